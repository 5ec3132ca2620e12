// Package table implements the in-memory columnar tables the
// consolidation engine operates on: an ordered, strictly typed schema,
// nullable typed columns, and the alignment and validation steps that
// run around every merge.
package table

// Type is the primitive type of a column. The consolidated table is
// restricted to these three types.
type Type int

const (
	// Int64 is a 64-bit signed integer column.
	Int64 Type = iota
	// Float64 is a 64-bit floating point column.
	Float64
	// String is a UTF-8 text column.
	String
)

// String returns the type name used in error messages.
func (t Type) String() string {
	switch t {
	case Int64:
		return "INT64"
	case Float64:
		return "FLOAT64"
	case String:
		return "STRING"
	}
	return "UNKNOWN"
}

// Numeric reports whether the type participates in additive accumulation.
func (t Type) Numeric() bool {
	return t == Int64 || t == Float64
}

// Field is one named, typed column definition.
type Field struct {
	Name string
	Type Type
}

// Schema is an ordered sequence of field definitions. Order is part of
// the contract: validated tables carry schema columns first, in this
// order.
type Schema []Field

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Has reports whether the schema contains a field with the given name.
func (s Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// UnionColumns returns the ordered union of two schemas: every field of a
// first, then fields unique to b in b's order. When both schemas carry a
// field of the same name, a's definition wins.
func UnionColumns(a, b Schema) Schema {
	out := make(Schema, 0, len(a)+len(b))
	out = append(out, a...)
	for _, f := range b {
		if !a.Has(f.Name) {
			out = append(out, f)
		}
	}
	return out
}
