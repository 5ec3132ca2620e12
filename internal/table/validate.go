package table

import (
	"fmt"

	"matchlake/internal/domain"
)

// ValidateAndOrder checks a table against the canonical schema and
// returns it with canonical columns first, in canonical order, followed
// by any tolerated extras in their input order. Row values are never
// altered and no coercion happens here; type alignment is Align's job,
// before the merge.
func ValidateAndOrder(t *Table, schema Schema, allowExtra bool) (*Table, error) {
	var missing []string
	for _, f := range schema {
		if !t.Has(f.Name) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, domain.ErrMissingColumns(missing...)
	}

	var mismatched []string
	for _, f := range schema {
		col, _ := t.Column(f.Name)
		if col.Type() != f.Type {
			mismatched = append(mismatched, fmt.Sprintf("%s: got %s, want %s", f.Name, col.Type(), f.Type))
		}
	}
	if len(mismatched) > 0 {
		return nil, domain.ErrTypeMismatch(mismatched...)
	}

	var extras []string
	for _, c := range t.cols {
		if !schema.Has(c.Name()) {
			extras = append(extras, c.Name())
		}
	}
	if len(extras) > 0 && !allowExtra {
		return nil, domain.ErrUnexpectedColumns(extras...)
	}

	return t.Select(append(schema.Names(), extras...))
}
