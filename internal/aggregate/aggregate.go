// Package aggregate rolls raw per-kind source records up into one delta
// batch per match, shaped for the merge engine: settled bets into
// turnover/winlost totals, odds quotes into first/last price summaries,
// and match results into the latest result row per match. Output columns
// are emitted already coerced to the canonical types.
package aggregate

import (
	"strconv"
	"strings"

	"matchlake/internal/domain"
	"matchlake/internal/table"
)

// sportIDs is the fixed set of sports the head-to-head table tracks.
var sportIDs = map[int64]bool{1: true, 2: true, 5: true, 8: true, 9: true, 10: true, 15: true}

// BuildDelta dispatches to the aggregator for the record kind. ok is
// false for kinds with no aggregator; the caller skips those objects.
func BuildDelta(kind domain.RecordKind, raw *table.Table) (*table.Table, bool, error) {
	switch kind {
	case domain.KindBets:
		t, err := Bets(raw)
		return t, true, err
	case domain.KindOdds:
		t, err := Odds(raw)
		return t, true, err
	case domain.KindMatchResult:
		t, err := MatchResults(raw)
		return t, true, err
	}
	return nil, false, nil
}

// requireColumns returns the named columns or a MissingColumnsError
// listing every absent one.
func requireColumns(t *table.Table, names ...string) (map[string]*table.Column, error) {
	var missing []string
	cols := make(map[string]*table.Column, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = c
	}
	if len(missing) > 0 {
		return nil, domain.ErrMissingColumns(missing...)
	}
	return cols, nil
}

// asInt coerces a cell to int64. Strings parse; ok is false for nulls
// and unparseable values.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// asFloat coerces a cell to float64, same rules as asInt.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// asString coerces a cell to its string form; ok is false for nulls.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	}
	return "", false
}

// floatOrZero reads a cell as float64 with null (and junk) as zero.
func floatOrZero(v any) float64 {
	f, ok := asFloat(v)
	if !ok {
		return 0
	}
	return f
}

// appendIntOrNull appends a coerced int64 cell, null on failure.
func appendIntOrNull(c *table.Column, v any) {
	if n, ok := asInt(v); ok {
		c.AppendInt(n)
		return
	}
	c.AppendNull()
}

// appendStrOrNull appends a coerced string cell, null on failure.
func appendStrOrNull(c *table.Column, v any) {
	if s, ok := asString(v); ok {
		c.AppendStr(s)
		return
	}
	c.AppendNull()
}
