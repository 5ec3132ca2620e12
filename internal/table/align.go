package table

import (
	"fmt"

	"matchlake/internal/domain"
)

// Align reconciles the column sets of a base table and a delta batch
// before a merge. The delta must carry the key column; if the base does
// not, it gains an all-null key column typed to match the delta's. Every
// column present on both sides (plus the key) whose delta type differs
// from the base's declared type is cast to the base type. Coercion is
// one-directional, the base's types are authoritative.
func Align(base, delta *Table, key string) (*Table, *Table, error) {
	deltaKey, ok := delta.Column(key)
	if !ok {
		return nil, nil, domain.ErrMissingKey(key)
	}

	if !base.Has(key) {
		withKey, err := base.WithColumn(NullColumn(key, deltaKey.Type(), base.NumRows()))
		if err != nil {
			return nil, nil, fmt.Errorf("add key column to base: %w", err)
		}
		base = withKey
	}

	shared := []string{key}
	for _, f := range base.Schema() {
		if f.Name != key && delta.Has(f.Name) {
			shared = append(shared, f.Name)
		}
	}

	for _, name := range shared {
		baseCol, _ := base.Column(name)
		deltaCol, _ := delta.Column(name)
		if deltaCol.Type() == baseCol.Type() {
			continue
		}
		cast, err := deltaCol.Cast(baseCol.Type())
		if err != nil {
			return nil, nil, fmt.Errorf("align delta column %q to base type: %w", name, err)
		}
		aligned, err := delta.WithColumn(cast)
		if err != nil {
			return nil, nil, err
		}
		delta = aligned
	}

	return base, delta, nil
}
