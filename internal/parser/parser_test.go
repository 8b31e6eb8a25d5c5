package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/sdelite/internal/registry"
	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
)

func table(t *testing.T, name string) *schema.Table {
	t.Helper()
	tbl, ok := registry.Default().Get(name)
	require.True(t, ok, "table %s not registered", name)
	return tbl
}

// -----------------------------------------------------------------------------
// Coercion
// -----------------------------------------------------------------------------

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		typ  schema.ColumnType
		want Value
	}{
		{"integer", `42`, schema.Integer, Integer(42)},
		{"negative integer", `-7`, schema.Integer, Integer(-7)},
		{"int64 max keeps precision", `9223372036854775807`, schema.Integer, Integer(9223372036854775807)},
		{"integer overflow", `9223372036854775808`, schema.Integer, Null()},
		{"float into integer", `1.5`, schema.Integer, Null()},
		{"string into integer", `"42"`, schema.Integer, Null()},
		{"real", `1.5`, schema.Real, Real(1.5)},
		{"integer into real", `3`, schema.Real, Real(3)},
		{"exponent real", `2.5e3`, schema.Real, Real(2500)},
		{"string into real", `"1.5"`, schema.Real, Null()},
		{"text", `"Tritanium"`, schema.Text, Text("Tritanium")},
		{"escaped text", `"a\"bé"`, schema.Text, Text(`a"bé`)},
		{"number into text", `5`, schema.Text, Null()},
		{"true", `true`, schema.Boolean, Integer(1)},
		{"false", `false`, schema.Boolean, Integer(0)},
		{"number into boolean", `1`, schema.Boolean, Null()},
		{"json object", `{"a": [1, 2]}`, schema.JSON, Text(`{"a":[1,2]}`)},
		{"json scalar", `7`, schema.JSON, Text(`7`)},
		{"null", `null`, schema.Integer, Null()},
		{"null json", `null`, schema.JSON, Null()},
		{"missing", ``, schema.Text, Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerce([]byte(tt.raw), tt.typ))
		})
	}
}

// -----------------------------------------------------------------------------
// Regular records
// -----------------------------------------------------------------------------

func TestParseRecord_Types(t *testing.T) {
	line := `{"_key": 34, "groupID": 18, "name": {"en": "Tritanium", "de": "Tritanium", "ja": "トリタニウム"}, ` +
		`"mass": 1.0, "published": true, "basePrice": null, "portionSize": 1, "sofFactionName": 5}`

	row, err := ParseRecord([]byte(line), table(t, "types"))
	require.NoError(t, err)

	assert.Equal(t, Integer(34), row["id"])
	assert.Equal(t, Integer(18), row["group_id"])
	assert.Equal(t, Text("Tritanium"), row["name_en"])
	assert.Equal(t, Text("トリタニウム"), row["name_ja"])
	assert.Equal(t, Null(), row["name_fr"])
	assert.Equal(t, Real(1.0), row["mass"])
	assert.Equal(t, Integer(1), row["published"])
	assert.Equal(t, Null(), row["base_price"])
	assert.Equal(t, Null(), row["sof_faction_name"], "type mismatch degrades to Null")
	assert.Equal(t, Null(), row["description_en"], "absent localized object gives Null for every language")

	for _, col := range table(t, "types").PhysicalColumns() {
		_, ok := row[col]
		assert.True(t, ok, "column %s missing from row", col)
	}
}

func TestParseRecord_NestedSourceField(t *testing.T) {
	line := `{"_key": 40000001, "solarSystemID": 30000001, "typeID": 11, "position": {"x": 1.5, "y": -2, "z": 3e2}}`

	row, err := ParseRecord([]byte(line), table(t, "map_planets"))
	require.NoError(t, err)

	assert.Equal(t, Real(1.5), row["position_x"])
	assert.Equal(t, Real(-2), row["position_y"])
	assert.Equal(t, Real(300), row["position_z"])
	assert.Equal(t, Integer(30000001), row["solar_system_id"])
}

func TestParseRecord_JSONColumn(t *testing.T) {
	line := `{"_key": 1, "_value": {"title": {"en": "x"}, "steps": [1, 2]}}`

	row, err := ParseRecord([]byte(line), table(t, "freelance_job_schemas"))
	require.NoError(t, err)
	assert.Equal(t, Text(`{"title":{"en":"x"},"steps":[1,2]}`), row["content"])
}

func TestParseRecord_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code sderr.Code
	}{
		{"malformed", `{"_key": 1,`, sderr.ErrMalformedJSON},
		{"array line", `[1, 2]`, sderr.ErrMalformedJSON},
		{"null line", `null`, sderr.ErrMalformedJSON},
		{"missing key", `{"name": {"en": "x"}}`, sderr.ErrMissingIdentifier},
		{"null key", `{"_key": null}`, sderr.ErrMissingIdentifier},
		{"string key on integer id", `{"_key": "1"}`, sderr.ErrInvalidIdentifier},
		{"fractional key", `{"_key": 1.5}`, sderr.ErrInvalidIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord([]byte(tt.line), table(t, "categories"))
			require.Error(t, err)
			assert.Equal(t, tt.code, sderr.GetCode(err))
		})
	}
}

func TestParseRecord_TextKey(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Value
	}{
		{"language code", `{"_key": "de", "name": "German"}`, Text("de")},
		{"integer key as text", `{"_key": 7, "name": "Klingon"}`, Text("7")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := ParseRecord([]byte(tt.line), table(t, "translation_languages"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, row["id"])
		})
	}

	_, err := ParseRecord([]byte(`{"name": "German"}`), table(t, "translation_languages"))
	assert.Equal(t, sderr.ErrMissingIdentifier, sderr.GetCode(err))

	_, err = ParseRecord([]byte(`{"_key": {"code": "de"}}`), table(t, "translation_languages"))
	assert.Equal(t, sderr.ErrInvalidIdentifier, sderr.GetCode(err))
	assert.Contains(t, err.Error(), "_key is not a valid text identifier")
}

func TestParse_RegularYieldsOneRow(t *testing.T) {
	rows, err := Parse([]byte(`{"_key": 6, "published": false}`), table(t, "categories"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Integer(0), rows[0]["published"])
}

// -----------------------------------------------------------------------------
// Junction strategies
// -----------------------------------------------------------------------------

func TestParseJunction_Simple(t *testing.T) {
	line := `{"_key": 587, "dogmaAttributes": [{"attributeID": 4, "value": 1.5e6}, {"attributeID": 9, "value": 350}]}`

	rows, err := ParseJunction([]byte(line), table(t, "type_dogma_attributes"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{"type_id": Integer(587), "attribute_id": Integer(4), "value": Real(1.5e6)}, rows[0])
	assert.Equal(t, Row{"type_id": Integer(587), "attribute_id": Integer(9), "value": Real(350)}, rows[1])
}

func TestParseJunction_SimpleSourceOverride(t *testing.T) {
	line := `{"_key": 65, "types": [{"_key": 2393, "isInput": true, "quantity": 40}, {"_key": 3689, "isInput": false, "quantity": 5}]}`

	rows, err := ParseJunction([]byte(line), table(t, "planet_schematic_types"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Integer(65), rows[0]["schematic_id"])
	assert.Equal(t, Integer(2393), rows[0]["type_id"])
	assert.Equal(t, Integer(1), rows[0]["is_input"])
	assert.Equal(t, Integer(0), rows[1]["is_input"])
}

func TestParseJunction_SimpleLocalizedElement(t *testing.T) {
	line := `{"_key": 11, "roleBonuses": [{"bonus": 50, "bonusText": {"en": "bonus to mining"}, "importance": 1, "unitID": 105}]}`

	rows, err := ParseJunction([]byte(line), table(t, "type_role_bonuses"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, Text("bonus to mining"), rows[0]["bonus_text_en"])
	assert.Equal(t, Null(), rows[0]["bonus_text_de"])
	assert.Equal(t, Integer(105), rows[0]["unit_id"])
}

func TestParseJunction_SimpleIntArray(t *testing.T) {
	line := `{"_key": 65, "pins": [2470, 2472, "x", 2474]}`

	rows, err := ParseJunction([]byte(line), table(t, "planet_schematic_pins"))
	require.NoError(t, err)
	require.Len(t, rows, 3, "non-integer elements are skipped")

	for i, want := range []int64{2470, 2472, 2474} {
		assert.Equal(t, Integer(65), rows[i]["schematic_id"])
		assert.Equal(t, Integer(want), rows[i]["pin_type_id"])
	}
}

func TestParseJunction_BlueprintActivity(t *testing.T) {
	line := `{"_key": 681, "blueprintTypeID": 681, "activities": {` +
		`"manufacturing": {"time": 600, "materials": [{"typeID": 38, "quantity": 86}], "products": [{"typeID": 165, "quantity": 1}]},` +
		`"copying": {"time": 480},` +
		`"invention": {"materials": [{"typeID": 20410, "quantity": 2}], "products": [{"typeID": 39581, "quantity": 1, "probability": 0.3}]}}}`

	materials, err := ParseJunction([]byte(line), table(t, "blueprint_materials"))
	require.NoError(t, err)
	require.Len(t, materials, 2)

	assert.Equal(t, Row{
		"blueprint_id": Integer(681),
		"activity":     Text("invention"),
		"type_id":      Integer(20410),
		"quantity":     Integer(2),
	}, materials[0], "activities are visited in sorted order")
	assert.Equal(t, Text("manufacturing"), materials[1]["activity"])

	products, err := ParseJunction([]byte(line), table(t, "blueprint_products"))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, Real(0.3), products[0]["probability"])
	assert.Equal(t, Null(), products[1]["probability"])

	skills, err := ParseJunction([]byte(line), table(t, "blueprint_skills"))
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestParseJunction_BlueprintKeyFallback(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"absent", `{"_key": 999, "activities": {"reaction": {"materials": [{"typeID": 1, "quantity": 2}]}}}`},
		{"null", `{"_key": 999, "blueprintTypeID": null, "activities": {"reaction": {"materials": [{"typeID": 1, "quantity": 2}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseJunction([]byte(tt.line), table(t, "blueprint_materials"))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, Integer(999), rows[0]["blueprint_id"])
		})
	}
}

func TestParseJunction_BlueprintIDWrongTypeFails(t *testing.T) {
	line := `{"_key": 999, "blueprintTypeID": "681", "activities": {"reaction": {"materials": [{"typeID": 1, "quantity": 2}]}}}`

	_, err := ParseJunction([]byte(line), table(t, "blueprint_materials"))
	require.Error(t, err)
	assert.Equal(t, sderr.ErrInvalidIdentifier, sderr.GetCode(err))
	assert.Contains(t, err.Error(), "blueprintTypeID")
}

func TestParseJunction_SkipsNonObjectElements(t *testing.T) {
	simple := `{"_key": 34, "materials": [{"materialTypeID": 35, "quantity": 2}, 7, null, {"materialTypeID": 36, "quantity": 1}]}`
	rows, err := ParseJunction([]byte(simple), table(t, "type_materials"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Integer(35), rows[0]["material_type_id"])
	assert.Equal(t, Integer(36), rows[1]["material_type_id"])

	nested := `{"_key": 582, "types": [{"_key": 3330, "_value": ["x", {"bonus": 10}]}]}`
	rows, err = ParseJunction([]byte(nested), table(t, "type_trait_bonuses"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Real(10), rows[0]["bonus"])
}

func TestParseJunction_NestedKeyValue(t *testing.T) {
	line := `{"_key": 582, "types": [` +
		`{"_key": 3330, "_value": [{"bonus": 10, "importance": 1, "unitID": 105}, {"bonus": 7.5, "importance": 2}]},` +
		`{"_key": "bad", "_value": [{"bonus": 1}]},` +
		`{"_key": 3335, "_value": [{"bonus": 5}]}]}`

	rows, err := ParseJunction([]byte(line), table(t, "type_trait_bonuses"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Integer(582), rows[0]["type_id"])
	assert.Equal(t, Integer(3330), rows[0]["skill_type_id"])
	assert.Equal(t, Real(10), rows[0]["bonus"])
	assert.Equal(t, Integer(105), rows[0]["unit_id"])
	assert.Equal(t, Real(7.5), rows[1]["bonus"])
	assert.Equal(t, Integer(3335), rows[2]["skill_type_id"])
}

func TestParseJunction_DoubleNested(t *testing.T) {
	line := `{"_key": 582, "_value": [{"_key": 0, "_value": [96, 139]}, {"_key": 1, "_value": [96]}]}`

	rows, err := ParseJunction([]byte(line), table(t, "type_masteries"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{"type_id": Integer(582), "mastery_level": Integer(0), "certificate_id": Integer(96)}, rows[0])
	assert.Equal(t, Row{"type_id": Integer(582), "mastery_level": Integer(0), "certificate_id": Integer(139)}, rows[1])
	assert.Equal(t, Row{"type_id": Integer(582), "mastery_level": Integer(1), "certificate_id": Integer(96)}, rows[2])
}

func TestParseJunction_DoubleNestedObjects(t *testing.T) {
	line := `{"_key": 582, "_value": [{"_key": 2, "_value": [{"certificateID": 140}]}]}`

	rows, err := ParseJunction([]byte(line), table(t, "type_masteries"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Integer(140), rows[0]["certificate_id"])
	assert.Equal(t, Integer(2), rows[0]["mastery_level"])
}

func TestParseJunction_DegradesToZeroRows(t *testing.T) {
	tests := []struct {
		name  string
		table string
		line  string
	}{
		{"missing array", "type_dogma_attributes", `{"_key": 1}`},
		{"array is an object", "type_dogma_attributes", `{"_key": 1, "dogmaAttributes": {"a": 1}}`},
		{"empty array", "type_materials", `{"_key": 1, "materials": []}`},
		{"scalar elements", "type_materials", `{"_key": 1, "materials": [1, 2]}`},
		{"no activities", "blueprint_materials", `{"_key": 1, "blueprintTypeID": 1}`},
		{"no levels", "type_masteries", `{"_key": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseJunction([]byte(tt.line), table(t, tt.table))
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestParseJunction_Errors(t *testing.T) {
	tests := []struct {
		name  string
		table string
		line  string
		code  sderr.Code
	}{
		{"malformed", "type_materials", `{"_key": `, sderr.ErrMalformedJSON},
		{"missing parent key", "type_materials", `{"materials": [{"materialTypeID": 1, "quantity": 2}]}`, sderr.ErrMissingIdentifier},
		{"string parent key", "type_materials", `{"_key": "34", "materials": []}`, sderr.ErrInvalidIdentifier},
		{"missing blueprint id", "blueprint_skills", `{"activities": {}}`, sderr.ErrMissingIdentifier},
		{"missing masteries key", "type_masteries", `{"_value": []}`, sderr.ErrMissingIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJunction([]byte(tt.line), table(t, tt.table))
			assert.Equal(t, tt.code, sderr.GetCode(err))
		})
	}
}

func TestParseJunction_Deterministic(t *testing.T) {
	line := []byte(`{"_key": 1, "blueprintTypeID": 1, "activities": {"research_time": {"skills": [{"typeID": 3, "level": 1}]}, "manufacturing": {"skills": [{"typeID": 3, "level": 1}]}, "copying": {"skills": [{"typeID": 3, "level": 1}]}}}`)
	first, err := ParseJunction(line, table(t, "blueprint_skills"))
	require.NoError(t, err)

	for range 20 {
		again, err := ParseJunction(line, table(t, "blueprint_skills"))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// -----------------------------------------------------------------------------
// Values
// -----------------------------------------------------------------------------

func TestRowArgs(t *testing.T) {
	row := Row{"a": Integer(1), "b": Text("x"), "c": Real(2.5)}
	assert.Equal(t, []any{int64(1), "x", 2.5, nil}, row.Args([]string{"a", "b", "c", "missing"}))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "NULL", Null().String())
	assert.Equal(t, "42", Integer(42).String())
	assert.Equal(t, "1.5", Real(1.5).String())
	assert.Equal(t, `"x"`, Text("x").String())
}
