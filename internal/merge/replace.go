package merge

import "matchlake/internal/table"

// Replace implements batch-level last-write-wins: a full outer join on
// the key where, for every overlapping column, a non-null delta value
// unconditionally supersedes the base value. Used for full-record kinds
// such as final match results. Replaying the same delta is idempotent.
type Replace struct {
	// Key is the primary-key column.
	Key string
	// Canon is the canonical schema the output must conform to.
	Canon table.Schema
}

// Merge applies the replace policy and validates the result.
func (m Replace) Merge(base, delta *table.Table) (*table.Table, error) {
	base, delta, err := table.Align(base, delta, m.Key)
	if err != nil {
		return nil, err
	}
	out, err := outerJoin(base, delta, m.Key, func(_ table.Field, bv, dv any) any {
		if dv != nil {
			return dv
		}
		return bv
	})
	if err != nil {
		return nil, err
	}
	return table.ValidateAndOrder(out, m.Canon, true)
}
