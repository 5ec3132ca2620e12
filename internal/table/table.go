package table

import "fmt"

// Table is a fully materialized, column-oriented table. Operations never
// mutate a table in place: they return a new table that may share
// unchanged columns with its inputs.
type Table struct {
	cols   []*Column
	byName map[string]int
}

// New creates an empty table (zero rows) with one empty column per
// schema field. This is the explicit "build from schema" constructor;
// callers holding data use FromColumns.
func New(schema Schema) *Table {
	cols := make([]*Column, len(schema))
	for i, f := range schema {
		cols[i] = NewColumn(f.Name, f.Type)
	}
	t, err := FromColumns(cols...)
	if err != nil {
		// Schema fields with duplicate names are a programming error.
		panic(err)
	}
	return t
}

// FromColumns creates a table from materialized columns. All columns
// must have the same length and unique names.
func FromColumns(cols ...*Column) (*Table, error) {
	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := byName[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name())
		}
		if c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), cols[0].Len())
		}
		byName[c.Name()] = i
	}
	return &Table{cols: cols, byName: byName}, nil
}

// Schema returns the table's current column definitions in column order.
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.cols))
	for i, c := range t.cols {
		s[i] = Field{Name: c.Name(), Type: c.Type()}
	}
	return s
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the columns in order.
func (t *Table) Columns() []*Column { return t.cols }

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Has reports whether the table contains the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// WithColumn returns a new table with the column appended, or replacing
// an existing column of the same name in place.
func (t *Table) WithColumn(col *Column) (*Table, error) {
	if t.NumCols() > 0 && col.Len() != t.NumRows() {
		return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name(), col.Len(), t.NumRows())
	}
	cols := make([]*Column, len(t.cols))
	copy(cols, t.cols)
	if i, ok := t.byName[col.Name()]; ok {
		cols[i] = col
	} else {
		cols = append(cols, col)
	}
	return FromColumns(cols...)
}

// Select returns a new table containing the named columns in the given
// order, sharing the underlying column data.
func (t *Table) Select(names []string) (*Table, error) {
	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("select: no column %q", name)
		}
		cols = append(cols, c)
	}
	return FromColumns(cols...)
}
