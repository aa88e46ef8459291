package alerts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/massfill"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
	assert.Equal(t, "✓", LevelSuccess.Icon())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	require.NoError(t, w.Write(
		New(LevelInfo, "read %d rows", 3),
		New(LevelError, "failed").WithDetails("a", "b"),
	))
	assert.Equal(t, "i read 3 rows\n✗ failed\n   a\n   b\n", buf.String())
}

func TestForRun(t *testing.T) {
	t.Run("all matched", func(t *testing.T) {
		got := ForRun(massfill.Summary{DataRows: 2, Matched: 2, Total: 2, MatchRate: 1})
		require.Len(t, got, 1)
		assert.Equal(t, LevelSuccess, got[0].Level)
		assert.Equal(t, "populated 2 rows, all 2 variations matched", got[0].Message)
	})

	t.Run("unmatched with warnings", func(t *testing.T) {
		got := ForRun(massfill.Summary{
			DataRows: 4, Matched: 3, Total: 4, MatchRate: 0.75, Unmatched: 2,
			UnmatchedProducts: []string{"100", "300"},
			Warnings: []string{"sales sheet is short"},
		})
		require.Len(t, got, 2)
		assert.Equal(t, "sales sheet is short", got[0].Message)
		assert.Equal(t, LevelWarning, got[1].Level)
		assert.Equal(t, "1 of 4 variations have no image (75.0% matched)", got[1].Message)
		assert.Equal(t, []string{"2 entries in unmatched_variations.csv", "products: 100, 300"}, got[1].Details)
	})

	t.Run("long product lists are cut", func(t *testing.T) {
		ids := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}
		got := ForRun(massfill.Summary{DataRows: 12, Total: 12, Unmatched: 12, UnmatchedProducts: ids})
		require.Len(t, got, 1)
		assert.Equal(t, "products: 1, 2, 3, 4, 5, 6, 7, 8, 9, 10 and 2 more", got[0].Details[1])
	})

	t.Run("no rows", func(t *testing.T) {
		got := ForRun(massfill.Summary{})
		require.Len(t, got, 1)
		assert.Equal(t, "no data rows were written", got[0].Message)
	})
}
