package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Column is a typed, nullable column vector. Exactly one of the backing
// slices is in use, selected by the column type; valid tracks nulls.
type Column struct {
	name   string
	typ    Type
	ints   []int64
	floats []float64
	strs   []string
	valid  []bool
}

// NewColumn creates an empty column of the given name and type.
func NewColumn(name string, typ Type) *Column {
	return &Column{name: name, typ: typ}
}

// NullColumn creates a column of n all-null values.
func NullColumn(name string, typ Type, n int) *Column {
	c := NewColumn(name, typ)
	for i := 0; i < n; i++ {
		c.AppendNull()
	}
	return c
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column type.
func (c *Column) Type() Type { return c.typ }

// Len returns the number of values, nulls included.
func (c *Column) Len() int { return len(c.valid) }

// IsNull reports whether the value at row i is null.
func (c *Column) IsNull(i int) bool { return !c.valid[i] }

// Int returns the int64 value at row i. The column must be Int64 typed
// and the value non-null.
func (c *Column) Int(i int) int64 { return c.ints[i] }

// Float returns the float64 value at row i.
func (c *Column) Float(i int) float64 { return c.floats[i] }

// Str returns the string value at row i.
func (c *Column) Str(i int) string { return c.strs[i] }

// Value returns the value at row i as int64, float64, or string, or nil
// when the value is null.
func (c *Column) Value(i int) any {
	if !c.valid[i] {
		return nil
	}
	switch c.typ {
	case Int64:
		return c.ints[i]
	case Float64:
		return c.floats[i]
	default:
		return c.strs[i]
	}
}

// AppendNull appends a null value.
func (c *Column) AppendNull() {
	c.ints = append(c.ints, 0)
	c.floats = append(c.floats, 0)
	c.strs = append(c.strs, "")
	c.valid = append(c.valid, false)
}

// AppendInt appends an int64 value. The column must be Int64 typed.
func (c *Column) AppendInt(v int64) {
	c.ints = append(c.ints, v)
	c.floats = append(c.floats, 0)
	c.strs = append(c.strs, "")
	c.valid = append(c.valid, true)
}

// AppendFloat appends a float64 value. The column must be Float64 typed.
func (c *Column) AppendFloat(v float64) {
	c.ints = append(c.ints, 0)
	c.floats = append(c.floats, v)
	c.strs = append(c.strs, "")
	c.valid = append(c.valid, true)
}

// AppendStr appends a string value. The column must be String typed.
func (c *Column) AppendStr(v string) {
	c.ints = append(c.ints, 0)
	c.floats = append(c.floats, 0)
	c.strs = append(c.strs, v)
	c.valid = append(c.valid, true)
}

// Append appends a value produced by Value on a column of the same type:
// nil for null, or an int64/float64/string matching the column type.
func (c *Column) Append(v any) error {
	if v == nil {
		c.AppendNull()
		return nil
	}
	switch c.typ {
	case Int64:
		if n, ok := v.(int64); ok {
			c.AppendInt(n)
			return nil
		}
	case Float64:
		if f, ok := v.(float64); ok {
			c.AppendFloat(f)
			return nil
		}
	case String:
		if s, ok := v.(string); ok {
			c.AppendStr(s)
			return nil
		}
	}
	return fmt.Errorf("cannot append %T value to %s column %q", v, c.typ, c.name)
}

// Cast returns a copy of the column converted to the target type. Nulls
// stay null. Numeric conversions follow columnar-engine casting: int to
// float is exact, float to int truncates, strings parse; an unparseable
// string fails the cast.
func (c *Column) Cast(to Type) (*Column, error) {
	if to == c.typ {
		return c, nil
	}
	out := NewColumn(c.name, to)
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			out.AppendNull()
			continue
		}
		switch to {
		case Int64:
			switch c.typ {
			case Float64:
				out.AppendInt(int64(c.Float(i)))
			case String:
				n, err := strconv.ParseInt(strings.TrimSpace(c.Str(i)), 10, 64)
				if err != nil {
					return nil, fmt.Errorf("cast column %q to %s: row %d value %q: %w", c.name, to, i, c.Str(i), err)
				}
				out.AppendInt(n)
			}
		case Float64:
			switch c.typ {
			case Int64:
				out.AppendFloat(float64(c.Int(i)))
			case String:
				f, err := strconv.ParseFloat(strings.TrimSpace(c.Str(i)), 64)
				if err != nil {
					return nil, fmt.Errorf("cast column %q to %s: row %d value %q: %w", c.name, to, i, c.Str(i), err)
				}
				out.AppendFloat(f)
			}
		case String:
			switch c.typ {
			case Int64:
				out.AppendStr(strconv.FormatInt(c.Int(i), 10))
			case Float64:
				out.AppendStr(strconv.FormatFloat(c.Float(i), 'g', -1, 64))
			}
		}
	}
	return out, nil
}

// Rename returns a copy of the column under a new name, sharing the
// backing data.
func (c *Column) Rename(name string) *Column {
	out := *c
	out.name = name
	return &out
}
