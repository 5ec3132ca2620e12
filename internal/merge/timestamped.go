package merge

import (
	"fmt"

	"matchlake/internal/domain"
	"matchlake/internal/table"
)

// Timestamped arbitrates every column independently by event timestamp.
// Base and delta rows are stacked into one combined rowset (columns
// absent on one side filled with nulls), grouped by key, and each
// column's per-group result is the first value when candidates are
// ordered non-null-first and then by the timestamp column: descending
// by default ("most recent non-null wins"), ascending for columns listed
// in Oldest ("earliest non-null wins", e.g. an opening quote that must
// never be overwritten). Used for price/commission kinds, where
// different columns of the same batch legitimately prefer different
// temporal endpoints.
type Timestamped struct {
	Key string
	// TimestampCol names the event-timestamp column candidates are
	// ordered by. It is itself arbitrated recent-wins, so the output
	// carries the latest known timestamp per key.
	TimestampCol string
	// Oldest lists the columns resolved earliest-non-null-wins.
	Oldest []string
	// Recent lists columns explicitly resolved most-recent-wins. Purely
	// declarative: recent is already the default direction.
	Recent []string
	Canon  table.Schema
}

// Merge applies timestamp arbitration and validates the result.
func (m Timestamped) Merge(base, delta *table.Table) (*table.Table, error) {
	if !base.Has(m.Key) && !delta.Has(m.Key) {
		return nil, domain.ErrMissingKey(m.Key)
	}
	if !base.Has(m.TimestampCol) && !delta.Has(m.TimestampCol) {
		return nil, domain.ErrMissingColumns(m.TimestampCol)
	}

	union := table.UnionColumns(base.Schema(), delta.Schema())
	combo, err := stack(union, base, delta)
	if err != nil {
		return nil, err
	}

	keyCol, _ := combo.Column(m.Key)
	tsCol, _ := combo.Column(m.TimestampCol)

	// Group rows by key, first-seen order. Null keys group together.
	groupOf := make(map[any]int)
	var groups [][]int
	var keys []any
	for i := 0; i < combo.NumRows(); i++ {
		k := keyCol.Value(i)
		g, ok := groupOf[k]
		if !ok {
			g = len(groups)
			groupOf[k] = g
			groups = append(groups, nil)
			keys = append(keys, k)
		}
		groups[g] = append(groups[g], i)
	}

	oldest := make(map[string]bool, len(m.Oldest))
	for _, name := range m.Oldest {
		oldest[name] = true
	}

	outKey := table.NewColumn(m.Key, keyCol.Type())
	for _, k := range keys {
		if err := outKey.Append(k); err != nil {
			return nil, err
		}
	}
	cols := []*table.Column{outKey}

	for _, f := range union {
		if f.Name == m.Key {
			continue
		}
		col, _ := combo.Column(f.Name)
		out := table.NewColumn(f.Name, f.Type)
		for _, rows := range groups {
			v := pickCandidate(col, tsCol, rows, !oldest[f.Name])
			if err := out.Append(v); err != nil {
				return nil, fmt.Errorf("arbitrate column %q: %w", f.Name, err)
			}
		}
		cols = append(cols, out)
	}

	out, err := table.FromColumns(cols...)
	if err != nil {
		return nil, err
	}
	return table.ValidateAndOrder(out, m.Canon, true)
}

// stack concatenates base and delta rows over the unioned column set,
// filling columns absent on one side with nulls. Columns whose delta
// type differs from the base's are cast to the base type first.
func stack(union table.Schema, base, delta *table.Table) (*table.Table, error) {
	cols := make([]*table.Column, 0, len(union))
	for _, f := range union {
		out := table.NewColumn(f.Name, f.Type)
		for _, side := range []*table.Table{base, delta} {
			col, ok := side.Column(f.Name)
			if !ok {
				for i := 0; i < side.NumRows(); i++ {
					out.AppendNull()
				}
				continue
			}
			if col.Type() != f.Type {
				cast, err := col.Cast(f.Type)
				if err != nil {
					return nil, fmt.Errorf("stack column %q: %w", f.Name, err)
				}
				col = cast
			}
			for i := 0; i < col.Len(); i++ {
				if err := out.Append(col.Value(i)); err != nil {
					return nil, err
				}
			}
		}
		cols = append(cols, out)
	}
	return table.FromColumns(cols...)
}

// pickCandidate selects the group's value for one column: non-null
// candidates beat null ones, and among non-null candidates the timestamp
// decides: larger wins when recent, smaller wins when oldest. A nil
// timestamp never beats a real one. Ties keep the earlier row, so the
// selection is stable. Returns nil when every candidate is null.
func pickCandidate(col, ts *table.Column, rows []int, recent bool) any {
	var best any
	var bestTS any
	have := false
	for _, r := range rows {
		v := col.Value(r)
		if v == nil {
			continue
		}
		t := ts.Value(r)
		if !have {
			best, bestTS, have = v, t, true
			continue
		}
		if beats(t, bestTS, recent) {
			best, bestTS = v, t
		}
	}
	return best
}

// beats reports whether timestamp a strictly outranks b for the given
// direction.
func beats(a, b any, recent bool) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	cmp := compareValues(a, b)
	if recent {
		return cmp > 0
	}
	return cmp < 0
}

// compareValues orders two non-nil values of the same primitive type.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case int64:
		bv := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case string:
		bv := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}
