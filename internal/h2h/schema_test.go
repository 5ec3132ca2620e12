package h2h

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchlake/internal/domain"
	"matchlake/internal/table"
)

func col(name string, typ table.Type, vals ...any) *table.Column {
	c := table.NewColumn(name, typ)
	for _, v := range vals {
		if n, ok := v.(int); ok {
			v = int64(n)
		}
		if err := c.Append(v); err != nil {
			panic(err)
		}
	}
	return c
}

func tbl(cols ...*table.Column) *table.Table {
	t, err := table.FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

func cell(t *table.Table, name string, i int) any {
	c, ok := t.Column(name)
	if !ok {
		panic("no column " + name)
	}
	return c.Value(i)
}

// === Schema ===

func TestSchema(t *testing.T) {
	s := Schema()

	t.Run("column_count_and_endpoints", func(t *testing.T) {
		require.Len(t, s, 27)
		assert.Equal(t, KeyColumn, s[0].Name)
		assert.Equal(t, TimestampColumn, s[len(s)-1].Name)
	})

	t.Run("types", func(t *testing.T) {
		want := map[string]table.Type{
			"MatchId":        table.Int64,
			"SportId":        table.Int64,
			"FinalHomeScore": table.Int64,
			"EventDate":      table.String,
			"KickOffTime":    table.String,
			"FirstOdds1":     table.Float64,
			"LastComx":       table.Float64,
			"TurnOver_SGD":   table.Float64,
			"Winlost_SGD":    table.Float64,
			"ModifiedOn":     table.String,
		}
		for name, typ := range want {
			f, ok := s.Lookup(name)
			require.True(t, ok, name)
			assert.Equal(t, typ, f.Type, name)
		}
	})

	t.Run("no_duplicate_names", func(t *testing.T) {
		seen := make(map[string]bool, len(s))
		for _, f := range s {
			assert.False(t, seen[f.Name], f.Name)
			seen[f.Name] = true
		}
	})
}

func TestEmpty(t *testing.T) {
	e := Empty()
	assert.Equal(t, 0, e.NumRows())
	assert.Equal(t, Schema(), e.Schema())
}

func TestArbitrationColumnSets(t *testing.T) {
	s := Schema()
	recent := RecentColumns()
	oldest := OldestColumns()

	inRecent := make(map[string]bool, len(recent))
	for _, name := range recent {
		inRecent[name] = true
		_, ok := s.Lookup(name)
		assert.True(t, ok, name)
	}
	for _, name := range oldest {
		assert.False(t, inRecent[name], "column %s listed in both directions", name)
		_, ok := s.Lookup(name)
		assert.True(t, ok, name)
	}
}

// === Policy end to end ===

func TestDefaultPolicyOdds(t *testing.T) {
	policy := DefaultPolicy()

	first := tbl(
		col("MatchId", table.Int64, 1),
		col("FirstOdds1", table.Float64, 1.5),
		col("LastOdds1", table.Float64, 1.5),
		col("ModifiedOn", table.String, "2024-03-01T10:00:00Z"),
	)
	base, ok, err := policy.Merge(domain.KindOdds, Empty(), first)
	require.NoError(t, err)
	require.True(t, ok)

	second := tbl(
		col("MatchId", table.Int64, 1),
		col("LastOdds1", table.Float64, 1.8),
		col("ModifiedOn", table.String, "2024-03-01T11:00:00Z"),
	)
	out, ok, err := policy.Merge(domain.KindOdds, base, second)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, 1.5, cell(out, "FirstOdds1", 0), "opening odds survive later batches")
	assert.Equal(t, 1.8, cell(out, "LastOdds1", 0))
	assert.Equal(t, "2024-03-01T11:00:00Z", cell(out, "ModifiedOn", 0))
	assert.Equal(t, Schema().Names(), out.Schema().Names())
}

func TestDefaultPolicyBets(t *testing.T) {
	policy := DefaultPolicy()

	first := tbl(
		col("MatchId", table.Int64, 1),
		col("TurnOver_SGD", table.Float64, 100.0),
		col("Winlost_SGD", table.Float64, -20.0),
	)
	base, ok, err := policy.Merge(domain.KindBets, Empty(), first)
	require.NoError(t, err)
	require.True(t, ok)

	second := tbl(
		col("MatchId", table.Int64, 1),
		col("TurnOver_SGD", table.Float64, 50.0),
		col("Winlost_SGD", table.Float64, 5.0),
	)
	out, ok, err := policy.Merge(domain.KindBets, base, second)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, 150.0, cell(out, "TurnOver_SGD", 0))
	assert.Equal(t, -15.0, cell(out, "Winlost_SGD", 0))
}

func TestDefaultPolicyMatchResult(t *testing.T) {
	policy := DefaultPolicy()

	first := tbl(
		col("MatchId", table.Int64, 1),
		col("HomeId", table.Int64, 10),
		col("AwayId", table.Int64, 20),
		col("FinalHomeScore", table.Int64, nil),
		col("FinalAwayScore", table.Int64, nil),
		col("EventDate", table.String, "2024-03-01"),
	)
	base, ok, err := policy.Merge(domain.KindMatchResult, Empty(), first)
	require.NoError(t, err)
	require.True(t, ok)

	second := tbl(
		col("MatchId", table.Int64, 1),
		col("FinalHomeScore", table.Int64, 2),
		col("FinalAwayScore", table.Int64, 1),
		col("EventDate", table.String, nil),
	)
	out, ok, err := policy.Merge(domain.KindMatchResult, base, second)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, int64(2), cell(out, "FinalHomeScore", 0))
	assert.Equal(t, int64(1), cell(out, "FinalAwayScore", 0))
	assert.Equal(t, "2024-03-01", cell(out, "EventDate", 0), "null delta never clears a base value")
	assert.Equal(t, int64(10), cell(out, "HomeId", 0))
}

func TestDefaultPolicyUnknownKind(t *testing.T) {
	policy := DefaultPolicy()

	out, ok, err := policy.Merge(domain.RecordKind("lineups"), Empty(), Empty())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestPolicyWithOddsOverride(t *testing.T) {
	// Flip LastOdds1 into the oldest direction and confirm the override
	// takes effect.
	policy := PolicyWithOdds(TimestampColumn,
		[]string{"FirstOdds1"},
		[]string{"LastOdds1"},
	)

	first := tbl(
		col("MatchId", table.Int64, 1),
		col("FirstOdds1", table.Float64, 1.5),
		col("LastOdds1", table.Float64, 1.5),
		col("ModifiedOn", table.String, "2024-03-01T10:00:00Z"),
	)
	base, _, err := policy.Merge(domain.KindOdds, Empty(), first)
	require.NoError(t, err)

	second := tbl(
		col("MatchId", table.Int64, 1),
		col("FirstOdds1", table.Float64, 1.9),
		col("LastOdds1", table.Float64, 1.9),
		col("ModifiedOn", table.String, "2024-03-01T11:00:00Z"),
	)
	out, _, err := policy.Merge(domain.KindOdds, base, second)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cell(out, "LastOdds1", 0))
	assert.Equal(t, 1.9, cell(out, "FirstOdds1", 0))
}
