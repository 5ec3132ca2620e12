package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromKey(t *testing.T) {
	cases := []struct {
		key  string
		want RecordKind
		ok   bool
	}{
		{"bd_bets/bets/day=20250221/part-0.parquet", KindBets, true},
		{"bd_bets/odds/part-0.parquet", KindOdds, true},
		{"bd_bets/match_result/part-0.parquet", KindMatchResult, true},
		{"bd_bets/lineups/part-0.parquet", "", false},
		{"bets", "", false},
		{"", "", false},
		{"bets/extra", "", false},
		{"x/bets", KindBets, true},
	}
	for _, tc := range cases {
		kind, ok := KindFromKey(tc.key)
		assert.Equal(t, tc.ok, ok, tc.key)
		assert.Equal(t, tc.want, kind, tc.key)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, ErrMissingColumns("A", "B"), "missing required columns: A, B")
	assert.EqualError(t, ErrTypeMismatch("A: got INT64, want STRING"), "column types do not match schema: A: got INT64, want STRING")
	assert.EqualError(t, ErrUnexpectedColumns("X"), "unexpected columns: X")
	assert.EqualError(t, ErrMissingKey("MatchId"), `delta is missing the key column "MatchId"`)
}
