// Package merge implements the reconciliation strategies that fold one
// delta batch into the consolidated table, and the per-kind dispatch
// between them. Each record kind resolves conflicts differently:
// match results replace, bet aggregates accumulate, and odds quotes are
// arbitrated per column by event timestamp.
package merge

import (
	"matchlake/internal/domain"
	"matchlake/internal/table"
)

// Strategy merges one delta batch into a base table and returns the
// updated consolidated table, validated against the canonical schema.
type Strategy interface {
	Merge(base, delta *table.Table) (*table.Table, error)
}

// Policy maps record kinds to merge strategies. Policies are static
// configuration assembled at startup, not runtime state.
type Policy struct {
	strategies map[domain.RecordKind]Strategy
}

// NewPolicy creates an empty policy table.
func NewPolicy() *Policy {
	return &Policy{strategies: make(map[domain.RecordKind]Strategy)}
}

// Register assigns a strategy to a record kind, replacing any previous
// assignment.
func (p *Policy) Register(kind domain.RecordKind, s Strategy) {
	p.strategies[kind] = s
}

// ForKind returns the strategy configured for a kind. ok is false when
// no strategy is registered; an unrecognized kind is a skip outcome for
// the caller, never an error.
func (p *Policy) ForKind(kind domain.RecordKind) (Strategy, bool) {
	s, ok := p.strategies[kind]
	return s, ok
}

// Merge dispatches to the strategy for the kind. ok mirrors ForKind.
func (p *Policy) Merge(kind domain.RecordKind, base, delta *table.Table) (*table.Table, bool, error) {
	s, ok := p.ForKind(kind)
	if !ok {
		return nil, false, nil
	}
	out, err := s.Merge(base, delta)
	return out, true, err
}
