package table

// Test helpers shared by the package's tests.

// col builds a column from literal values: int, int64, float64, string,
// or nil for null.
func col(name string, typ Type, vals ...any) *Column {
	c := NewColumn(name, typ)
	for _, v := range vals {
		if n, ok := v.(int); ok {
			v = int64(n)
		}
		if err := c.Append(v); err != nil {
			panic(err)
		}
	}
	return c
}

// tbl builds a table from columns, panicking on malformed input.
func tbl(cols ...*Column) *Table {
	t, err := FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return t
}
