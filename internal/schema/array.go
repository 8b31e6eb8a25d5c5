package schema

// Strategy selects how a junction table's rows are extracted.
type Strategy int

const (
	// Simple: each element of an array of objects becomes a row.
	Simple Strategy = iota
	// SimpleIntArray: each integer of an array becomes a row.
	SimpleIntArray
	// BlueprintActivityStrategy: activities map, each activity holding one array.
	BlueprintActivityStrategy
	// NestedKeyValue: array of {_key, _value: [objects]} wrappers.
	NestedKeyValueStrategy
	// DoubleNested: the record's own _value is an array of {_key, _value: [...]}.
	DoubleNestedStrategy
)

func (s Strategy) String() string {
	switch s {
	case Simple:
		return "simple"
	case SimpleIntArray:
		return "simple_int_array"
	case BlueprintActivityStrategy:
		return "blueprint_activity"
	case NestedKeyValueStrategy:
		return "nested_key_value"
	case DoubleNestedStrategy:
		return "double_nested"
	}
	return "unknown"
}

// MarshalText renders the strategy by name for exports.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ArraySource describes where a junction table's rows live inside a parent
// record. Only the fields used by Strategy are set; build one with the
// constructors below.
type ArraySource struct {
	Strategy       Strategy `yaml:"strategy" json:"strategy"`
	ArrayField     string   `yaml:"array_field,omitempty" json:"array_field,omitempty"`
	ParentIDColumn string   `yaml:"parent_id_column" json:"parent_id_column"`
	ValueColumn    string   `yaml:"value_column,omitempty" json:"value_column,omitempty"`
	ActivityColumn string   `yaml:"activity_column,omitempty" json:"activity_column,omitempty"`
	KeyColumn      string   `yaml:"key_column,omitempty" json:"key_column,omitempty"`
}

// SimpleArray rows come from the objects of record[field].
func SimpleArray(field, parentCol string) *ArraySource {
	return &ArraySource{Strategy: Simple, ArrayField: field, ParentIDColumn: parentCol}
}

// IntArray rows come from the integers of record[field], stored in valueCol.
func IntArray(field, parentCol, valueCol string) *ArraySource {
	return &ArraySource{Strategy: SimpleIntArray, ArrayField: field, ParentIDColumn: parentCol, ValueColumn: valueCol}
}

// BlueprintActivity rows come from record.activities.<name>[field]; the
// activity name is stored in activityCol.
func BlueprintActivity(parentCol, activityCol, field string) *ArraySource {
	return &ArraySource{Strategy: BlueprintActivityStrategy, ArrayField: field, ParentIDColumn: parentCol, ActivityColumn: activityCol}
}

// NestedKeyValue rows come from record[field][*]._value[*]; each wrapper's
// _key is stored in keyCol.
func NestedKeyValue(field, parentCol, keyCol string) *ArraySource {
	return &ArraySource{Strategy: NestedKeyValueStrategy, ArrayField: field, ParentIDColumn: parentCol, KeyColumn: keyCol}
}

// DoubleNested rows come from record._value[*]._value[*]; the wrapper's _key
// is stored in levelCol and bare integer elements in valueCol.
func DoubleNested(parentCol, levelCol, valueCol string) *ArraySource {
	return &ArraySource{Strategy: DoubleNestedStrategy, ParentIDColumn: parentCol, KeyColumn: levelCol, ValueColumn: valueCol}
}

// ContextColumns returns the columns the strategy fills itself. The rest of
// the table's columns are read from each array element.
func (a *ArraySource) ContextColumns() []string {
	cols := []string{a.ParentIDColumn}
	switch a.Strategy {
	case SimpleIntArray:
		cols = append(cols, a.ValueColumn)
	case BlueprintActivityStrategy:
		cols = append(cols, a.ActivityColumn)
	case NestedKeyValueStrategy:
		cols = append(cols, a.KeyColumn)
	case DoubleNestedStrategy:
		cols = append(cols, a.KeyColumn)
	}
	return cols
}
