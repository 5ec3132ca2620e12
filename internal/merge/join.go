package merge

import (
	"fmt"

	"matchlake/internal/table"
)

// rowPair addresses one output row of an outer join: an index into the
// base, the delta, or both. -1 marks an absent side.
type rowPair struct {
	bi, di int
}

// outerPairs computes the row pairing of a full outer join on key: every
// base row in base order, then unmatched delta rows in delta order. Rows
// with a null key never match anything.
func outerPairs(baseKey, deltaKey *table.Column) []rowPair {
	deltaIdx := make(map[any]int, deltaKey.Len())
	for i := 0; i < deltaKey.Len(); i++ {
		if v := deltaKey.Value(i); v != nil {
			deltaIdx[v] = i
		}
	}

	pairs := make([]rowPair, 0, baseKey.Len()+deltaKey.Len())
	matched := make([]bool, deltaKey.Len())
	for i := 0; i < baseKey.Len(); i++ {
		di := -1
		if v := baseKey.Value(i); v != nil {
			if j, ok := deltaIdx[v]; ok {
				di = j
				matched[j] = true
			}
		}
		pairs = append(pairs, rowPair{bi: i, di: di})
	}
	for j := 0; j < deltaKey.Len(); j++ {
		if !matched[j] {
			pairs = append(pairs, rowPair{bi: -1, di: j})
		}
	}
	return pairs
}

// resolveFunc combines the base and delta values of one overlapping
// column for a matched row. Either value may be nil (null).
type resolveFunc func(f table.Field, baseVal, deltaVal any) any

// outerJoin materializes a full outer join of base and delta on key.
// Output columns are the ordered union of both sides (base order first,
// delta extras after). Columns present on both sides are combined with
// resolve; one-sided columns pass through, null on the other side's
// rows. Inputs are assumed aligned: overlapping columns share the base's
// declared type.
func outerJoin(base, delta *table.Table, key string, resolve resolveFunc) (*table.Table, error) {
	baseKey, _ := base.Column(key)
	deltaKey, _ := delta.Column(key)
	pairs := outerPairs(baseKey, deltaKey)
	union := table.UnionColumns(base.Schema(), delta.Schema())

	cols := make([]*table.Column, 0, len(union))
	for _, f := range union {
		out := table.NewColumn(f.Name, f.Type)
		baseCol, inBase := base.Column(f.Name)
		deltaCol, inDelta := delta.Column(f.Name)

		for _, p := range pairs {
			var bv, dv any
			if inBase && p.bi >= 0 {
				bv = baseCol.Value(p.bi)
			}
			if inDelta && p.di >= 0 {
				dv = deltaCol.Value(p.di)
			}

			var v any
			switch {
			case f.Name == key:
				// The key is equal on both sides of a matched pair.
				if p.bi >= 0 {
					v = bv
				} else {
					v = dv
				}
			case inBase && inDelta:
				v = resolve(f, bv, dv)
			case inBase:
				v = bv
			default:
				v = dv
			}
			if err := out.Append(v); err != nil {
				return nil, fmt.Errorf("join column %q: %w", f.Name, err)
			}
		}
		cols = append(cols, out)
	}
	return table.FromColumns(cols...)
}
