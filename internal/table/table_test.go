package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	out := New(testSchema)

	assert.Equal(t, 0, out.NumRows())
	assert.Equal(t, testSchema, out.Schema())
}

func TestFromColumns(t *testing.T) {
	t.Run("duplicate_names_rejected", func(t *testing.T) {
		_, err := FromColumns(col("a", Int64, 1), col("a", Int64, 2))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"a"`)
	})

	t.Run("ragged_lengths_rejected", func(t *testing.T) {
		_, err := FromColumns(col("a", Int64, 1, 2), col("b", Int64, 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"b"`)
	})
}

func TestWithColumn(t *testing.T) {
	base := tbl(col("a", Int64, 1, 2))

	t.Run("appends_new_column", func(t *testing.T) {
		out, err := base.WithColumn(col("b", String, "x", "y"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, out.Schema().Names())
		assert.Equal(t, []string{"a"}, base.Schema().Names(), "input table unchanged")
	})

	t.Run("replaces_in_place", func(t *testing.T) {
		out, err := base.WithColumn(col("a", String, "x", "y"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, out.Schema().Names())
		a, _ := out.Column("a")
		assert.Equal(t, String, a.Type())
	})

	t.Run("length_mismatch_rejected", func(t *testing.T) {
		_, err := base.WithColumn(col("b", Int64, 1))
		require.Error(t, err)
	})
}

func TestSelect(t *testing.T) {
	in := tbl(col("a", Int64, 1), col("b", String, "x"))

	out, err := in.Select([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, out.Schema().Names())

	_, err = in.Select([]string{"missing"})
	require.Error(t, err)
}
