package parser

import (
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	}
	return "null"
}

// Value is a single storage value: Null, Integer, Real or Text. The zero
// Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Integer returns an integer value.
func Integer(v int64) Value { return Value{kind: KindInteger, i: v} }

// Real returns a floating point value.
func Real(v float64) Value { return Value{kind: KindReal, f: v} }

// Text returns a text value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer payload.
func (v Value) Int64() (int64, bool) { return v.i, v.kind == KindInteger }

// Float64 returns the real payload.
func (v Value) Float64() (float64, bool) { return v.f, v.kind == KindReal }

// Str returns the text payload.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindText }

// Any returns the value as a database/sql argument: nil, int64, float64 or string.
func (v Value) Any() any {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindReal:
		return v.f
	case KindText:
		return v.s
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	}
	return "NULL"
}

// Row maps physical column names to values. Columns absent from the map are Null.
type Row map[string]Value

// Args returns the row's values in column order as driver arguments.
func (r Row) Args(columns []string) []any {
	args := make([]any, len(columns))
	for i, c := range columns {
		args[i] = r[c].Any()
	}
	return args
}
