package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchlake/internal/domain"
)

var testSchema = Schema{
	{Name: "MatchId", Type: Int64},
	{Name: "TurnOver_SGD", Type: Float64},
	{Name: "ModifiedOn", Type: String},
}

func TestValidateAndOrder(t *testing.T) {
	t.Run("exact_schema_is_noop_reorder", func(t *testing.T) {
		in := tbl(
			col("ModifiedOn", String, "t1"),
			col("MatchId", Int64, 1),
			col("TurnOver_SGD", Float64, 100.0),
		)

		out, err := ValidateAndOrder(in, testSchema, false)

		require.NoError(t, err)
		assert.Equal(t, []string{"MatchId", "TurnOver_SGD", "ModifiedOn"}, out.Schema().Names())
		matchID, _ := out.Column("MatchId")
		assert.Equal(t, int64(1), matchID.Value(0))
	})

	t.Run("missing_columns", func(t *testing.T) {
		in := tbl(col("MatchId", Int64, 1))

		_, err := ValidateAndOrder(in, testSchema, true)

		var missing *domain.MissingColumnsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"TurnOver_SGD", "ModifiedOn"}, missing.Columns)
	})

	t.Run("type_mismatch", func(t *testing.T) {
		in := tbl(
			col("MatchId", Int64, 1),
			col("TurnOver_SGD", Int64, 100), // should be FLOAT64
			col("ModifiedOn", String, "t1"),
		)

		_, err := ValidateAndOrder(in, testSchema, true)

		var mismatch *domain.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		require.Len(t, mismatch.Details, 1)
		assert.Contains(t, mismatch.Details[0], "TurnOver_SGD")
		assert.Contains(t, mismatch.Details[0], "INT64")
		assert.Contains(t, mismatch.Details[0], "FLOAT64")
	})

	t.Run("extras_rejected_when_not_allowed", func(t *testing.T) {
		in := tbl(
			col("MatchId", Int64, 1),
			col("TurnOver_SGD", Float64, 100.0),
			col("ModifiedOn", String, "t1"),
			col("Comment", String, "x"),
		)

		_, err := ValidateAndOrder(in, testSchema, false)

		var unexpected *domain.UnexpectedColumnsError
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, []string{"Comment"}, unexpected.Columns)
	})

	t.Run("extras_kept_after_schema_columns", func(t *testing.T) {
		in := tbl(
			col("Comment", String, "x"),
			col("ModifiedOn", String, "t1"),
			col("MatchId", Int64, 1),
			col("TurnOver_SGD", Float64, 100.0),
			col("Source", String, "feed-a"),
		)

		out, err := ValidateAndOrder(in, testSchema, true)

		require.NoError(t, err)
		assert.Equal(t, []string{"MatchId", "TurnOver_SGD", "ModifiedOn", "Comment", "Source"}, out.Schema().Names())
	})

	t.Run("values_unaltered", func(t *testing.T) {
		in := tbl(
			col("ModifiedOn", String, "t1", nil),
			col("MatchId", Int64, 1, 2),
			col("TurnOver_SGD", Float64, 100.0, nil),
		)

		out, err := ValidateAndOrder(in, testSchema, false)

		require.NoError(t, err)
		turnover, _ := out.Column("TurnOver_SGD")
		assert.Equal(t, 100.0, turnover.Value(0))
		assert.Nil(t, turnover.Value(1))
		modified, _ := out.Column("ModifiedOn")
		assert.Nil(t, modified.Value(1))
	})
}
