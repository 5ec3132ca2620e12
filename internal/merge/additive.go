package merge

import "matchlake/internal/table"

// Additive implements cumulative accumulation for stake/turnover kinds:
// a full outer join on the key where numeric overlapping columns are
// summed, nulls counting as zero. Reapplying the same delta changes the
// totals, so this strategy is not idempotent and redelivery of a batch
// double-counts.
//
// Non-numeric overlapping columns fall back base-first: the base value is
// kept when present and the delta fills only nulls. Note this is the
// opposite precedence from Replace.
type Additive struct {
	Key   string
	Canon table.Schema
}

// Merge applies the additive policy and validates the result.
func (m Additive) Merge(base, delta *table.Table) (*table.Table, error) {
	base, delta, err := table.Align(base, delta, m.Key)
	if err != nil {
		return nil, err
	}
	out, err := outerJoin(base, delta, m.Key, func(f table.Field, bv, dv any) any {
		if !f.Type.Numeric() {
			if bv != nil {
				return bv
			}
			return dv
		}
		return sumValues(f.Type, bv, dv)
	})
	if err != nil {
		return nil, err
	}
	return table.ValidateAndOrder(out, m.Canon, true)
}

// sumValues adds two nullable numeric values with null coalesced to
// zero. The result is always non-null, matching accumulator semantics.
func sumValues(t table.Type, a, b any) any {
	if t == table.Int64 {
		var sum int64
		if a != nil {
			sum += a.(int64)
		}
		if b != nil {
			sum += b.(int64)
		}
		return sum
	}
	var sum float64
	if a != nil {
		sum += a.(float64)
	}
	if b != nil {
		sum += b.(float64)
	}
	return sum
}
