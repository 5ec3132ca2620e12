package merge

import "matchlake/internal/table"

// col builds a column from literal values: int, int64, float64, string,
// or nil for null.
func col(name string, typ table.Type, vals ...any) *table.Column {
	c := table.NewColumn(name, typ)
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
func tbl(cols ...*table.Column) *table.Table {
	t, err := table.FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// cell returns the named column's value at row i.
func cell(t *table.Table, name string, i int) any {
	c, ok := t.Column(name)
	if !ok {
		panic("no column " + name)
	}
	return c.Value(i)
}

// rowByKey returns the row index whose key column equals want.
func rowByKey(t *table.Table, key string, want any) int {
	if n, ok := want.(int); ok {
		want = int64(n)
	}
	c, _ := t.Column(key)
	for i := 0; i < c.Len(); i++ {
		if c.Value(i) == want {
			return i
		}
	}
	return -1
}
