// Package parser turns one JSONL source line into the typed rows of a table.
//
// Regular tables yield exactly one row per line. Junction tables yield zero
// or more rows per line, pulled out of nested arrays according to the
// table's ArraySource strategy. Only malformed JSON and missing or mistyped
// identifiers are errors; every other shape mismatch degrades to Null or to
// zero rows.
package parser

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
)

// object is a lazily decoded JSON object: values stay raw until a column asks for them.
type object map[string]json.RawMessage

// Parse dispatches to ParseRecord or ParseJunction depending on the table.
func Parse(line []byte, t *schema.Table) ([]Row, error) {
	if t.IsJunction() {
		return ParseJunction(line, t)
	}
	row, err := ParseRecord(line, t)
	if err != nil {
		return nil, err
	}
	return []Row{row}, nil
}

// ParseRecord parses a line of a regular table into one row.
func ParseRecord(line []byte, t *schema.Table) (Row, error) {
	obj, err := decodeLine(line)
	if err != nil {
		return nil, err
	}

	row := make(Row, len(t.Columns))
	fillColumns(row, obj, t.Columns)

	if c, ok := t.Column("id"); ok {
		id, err := identifier(obj, c)
		if err != nil {
			return nil, err.WithTable(t.Name)
		}
		row[c.Name] = id
	}
	return row, nil
}

// ParseJunction parses a line of a junction table into its rows.
func ParseJunction(line []byte, t *schema.Table) ([]Row, error) {
	src := t.ArraySource
	if src == nil {
		return nil, sderr.New(sderr.ErrSchemaInvalid, "table has no array source").WithTable(t.Name)
	}

	obj, err := decodeLine(line)
	if err != nil {
		return nil, err
	}

	p := &junction{table: t, src: src, elementCols: elementColumns(t)}

	switch src.Strategy {
	case schema.Simple:
		return p.simple(obj)
	case schema.SimpleIntArray:
		return p.intArray(obj)
	case schema.BlueprintActivityStrategy:
		return p.blueprintActivity(obj)
	case schema.NestedKeyValueStrategy:
		return p.nestedKeyValue(obj)
	case schema.DoubleNestedStrategy:
		return p.doubleNested(obj)
	}
	return nil, sderr.Newf(sderr.ErrSchemaInvalid, "unknown array strategy %d", src.Strategy).WithTable(t.Name)
}

func decodeLine(line []byte) (object, error) {
	var obj object
	if err := json.Unmarshal(line, &obj); err != nil {
		return nil, sderr.Wrap(sderr.ErrMalformedJSON, err, "malformed JSON")
	}
	if obj == nil {
		return nil, sderr.New(sderr.ErrMalformedJSON, "line is not a JSON object")
	}
	return obj, nil
}

// elementColumns are the columns read from each array element: everything
// the strategy does not fill itself.
func elementColumns(t *schema.Table) []schema.Column {
	skip := t.ArraySource.ContextColumns()
	cols := make([]schema.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !slices.Contains(skip, c.Name) {
			cols = append(cols, c)
		}
	}
	return cols
}

// -----------------------------------------------------------------------------
// Identifiers
// -----------------------------------------------------------------------------

// identifier reads a table's id. Integer ids need an integer key. Text ids
// take a string key, or an integer key as its decimal text.
func identifier(obj object, c schema.Column) (Value, *sderr.Error) {
	field := c.SourceField()
	raw, _ := lookup(obj, field)
	if err := present(raw, field); err != nil {
		return Null(), err
	}
	if v, ok := intValue(raw); ok {
		if c.Type == schema.Text {
			return Text(strconv.FormatInt(v, 10)), nil
		}
		return Integer(v), nil
	}
	if s, ok := stringValue(raw); ok && c.Type == schema.Text {
		return Text(s), nil
	}
	return Null(), wrongType(raw, field, c.Type)
}

// requireInt reads an integer identifier that must be present.
func requireInt(obj object, field string) (int64, *sderr.Error) {
	raw := obj[field]
	if err := present(raw, field); err != nil {
		return 0, err
	}
	if v, ok := intValue(raw); ok {
		return v, nil
	}
	return 0, wrongType(raw, field, schema.Integer)
}

func present(raw json.RawMessage, field string) *sderr.Error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return sderr.Newf(sderr.ErrMissingIdentifier, "missing %s", field)
	}
	return nil
}

func wrongType(raw json.RawMessage, field string, want schema.ColumnType) *sderr.Error {
	return sderr.Newf(sderr.ErrInvalidIdentifier, "%s is not a valid %s identifier", field, want).
		With("value", string(bytes.TrimSpace(raw)))
}

// -----------------------------------------------------------------------------
// Junction strategies
// -----------------------------------------------------------------------------

type junction struct {
	table       *schema.Table
	src         *schema.ArraySource
	elementCols []schema.Column
}

func (p *junction) parentID(obj object) (int64, error) {
	id, err := requireInt(obj, "_key")
	if err != nil {
		return 0, err.WithTable(p.table.Name)
	}
	return id, nil
}

// elementRow builds a row from an array element plus the values the strategy fixed.
func (p *junction) elementRow(elem object, fixed Row) Row {
	row := make(Row, len(p.table.Columns))
	for k, v := range fixed {
		row[k] = v
	}
	fillColumns(row, elem, p.elementCols)
	return row
}

// {"_key": 1, "field": [{...}, {...}]}
func (p *junction) simple(obj object) ([]Row, error) {
	parent, err := p.parentID(obj)
	if err != nil {
		return nil, err
	}

	items, _ := arrayValue(obj[p.src.ArrayField])
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		elem, ok := objectValue(item)
		if !ok {
			continue
		}
		rows = append(rows, p.elementRow(elem, Row{p.src.ParentIDColumn: Integer(parent)}))
	}
	return rows, nil
}

// {"_key": 1, "field": [10, 20, 30]}
func (p *junction) intArray(obj object) ([]Row, error) {
	parent, err := p.parentID(obj)
	if err != nil {
		return nil, err
	}

	items, _ := arrayValue(obj[p.src.ArrayField])
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		v, ok := intValue(item)
		if !ok {
			continue
		}
		row := Row{
			p.src.ParentIDColumn: Integer(parent),
			p.src.ValueColumn:    Integer(v),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// {"blueprintTypeID": 1, "activities": {"manufacturing": {"field": [{...}]}}}
func (p *junction) blueprintActivity(obj object) ([]Row, error) {
	// _key stands in only when blueprintTypeID is absent; a malformed one fails.
	field := "blueprintTypeID"
	if raw := bytes.TrimSpace(obj[field]); len(raw) == 0 || isNull(raw) {
		field = "_key"
	}
	parent, err := requireInt(obj, field)
	if err != nil {
		return nil, err.WithTable(p.table.Name)
	}

	activities, ok := objectValue(obj["activities"])
	if !ok {
		return nil, nil
	}

	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	slices.Sort(names)

	var rows []Row
	for _, name := range names {
		activity, ok := objectValue(activities[name])
		if !ok {
			continue
		}
		items, _ := arrayValue(activity[p.src.ArrayField])
		for _, item := range items {
			elem, ok := objectValue(item)
			if !ok {
				continue
			}
			rows = append(rows, p.elementRow(elem, Row{
				p.src.ParentIDColumn: Integer(parent),
				p.src.ActivityColumn: Text(name),
			}))
		}
	}
	return rows, nil
}

// {"_key": 1, "field": [{"_key": 7, "_value": [{...}, {...}]}]}
func (p *junction) nestedKeyValue(obj object) ([]Row, error) {
	parent, err := p.parentID(obj)
	if err != nil {
		return nil, err
	}

	wrappers, _ := arrayValue(obj[p.src.ArrayField])
	var rows []Row
	for _, w := range wrappers {
		wrapper, ok := objectValue(w)
		if !ok {
			continue
		}
		key, ok := intValue(wrapper["_key"])
		if !ok {
			continue
		}
		items, _ := arrayValue(wrapper["_value"])
		for _, item := range items {
			elem, ok := objectValue(item)
			if !ok {
				continue
			}
			rows = append(rows, p.elementRow(elem, Row{
				p.src.ParentIDColumn: Integer(parent),
				p.src.KeyColumn:      Integer(key),
			}))
		}
	}
	return rows, nil
}

// {"_key": 1, "_value": [{"_key": 0, "_value": [96, 97]}, ...]}
func (p *junction) doubleNested(obj object) ([]Row, error) {
	parent, err := p.parentID(obj)
	if err != nil {
		return nil, err
	}

	levels, _ := arrayValue(obj["_value"])
	var rows []Row
	for _, l := range levels {
		level, ok := objectValue(l)
		if !ok {
			continue
		}
		key, ok := intValue(level["_key"])
		if !ok {
			continue
		}
		items, _ := arrayValue(level["_value"])
		for _, item := range items {
			fixed := Row{
				p.src.ParentIDColumn: Integer(parent),
				p.src.KeyColumn:      Integer(key),
			}
			if v, ok := intValue(item); ok {
				fixed[p.src.ValueColumn] = Integer(v)
				rows = append(rows, fixed)
				continue
			}
			if elem, ok := objectValue(item); ok {
				rows = append(rows, p.elementRow(elem, fixed))
			}
		}
	}
	return rows, nil
}

// -----------------------------------------------------------------------------
// Column extraction
// -----------------------------------------------------------------------------

// fillColumns sets every column of cols on row from obj.
func fillColumns(row Row, obj object, cols []schema.Column) {
	for _, c := range cols {
		raw, _ := lookup(obj, c.SourceField())

		if c.Type == schema.Localized {
			translations, _ := objectValue(raw)
			for _, lang := range schema.Languages {
				v := Null()
				if s, ok := stringValue(translations[lang]); ok {
					v = Text(s)
				}
				row[schema.LocalizedName(c.Name, lang)] = v
			}
			continue
		}
		row[c.Name] = coerce(raw, c.Type)
	}
}

// lookup resolves a field name, or a dotted path into nested objects.
func lookup(obj object, path string) (json.RawMessage, bool) {
	if raw, ok := obj[path]; ok || !strings.Contains(path, ".") {
		return raw, ok
	}

	parts := strings.Split(path, ".")
	cur := obj
	for i, part := range parts {
		raw, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return raw, true
		}
		if cur, ok = objectValue(raw); !ok {
			return nil, false
		}
	}
	return nil, false
}

// coerce converts a raw JSON value to the storage value for typ. Missing,
// null and mismatched values become Null.
func coerce(raw json.RawMessage, typ schema.ColumnType) Value {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return Null()
	}

	switch typ {
	case schema.Integer:
		if v, ok := intValue(raw); ok {
			return Integer(v)
		}
	case schema.Real:
		if isNumber(raw) {
			if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
				return Real(f)
			}
		}
	case schema.Text:
		if s, ok := stringValue(raw); ok {
			return Text(s)
		}
	case schema.Boolean:
		switch string(raw) {
		case "true":
			return Integer(1)
		case "false":
			return Integer(0)
		}
	case schema.JSON:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return Text(buf.String())
		}
	}
	return Null()
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func isNumber(raw json.RawMessage) bool {
	return len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'))
}

// intValue accepts JSON numbers written as integers that fit in int64.
func intValue(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if !isNumber(raw) {
		return 0, false
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	return v, err == nil
}

func stringValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func objectValue(raw json.RawMessage) (object, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func arrayValue(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}
