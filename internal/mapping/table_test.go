package mapping_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fretkey/fretkey/internal/mapping"
	"github.com/fretkey/fretkey/sdk/contracts"
)

func buildTable(t *testing.T) *mapping.Table {
	t.Helper()
	table, err := mapping.Parse(strings.NewReader(file(standardRows(nil)...)), mapping.StandardTuning)
	require.NoError(t, err)
	return table
}

func TestTableFret(t *testing.T) {
	table := buildTable(t)

	t.Run("derives the fret from the string tuning", func(t *testing.T) {
		fret, ok := table.Fret(1, 64) // open high E
		require.True(t, ok)
		require.Equal(t, 0, fret)

		fret, ok = table.Fret(1, 86) // last fret on the high E
		require.True(t, ok)
		require.Equal(t, 22, fret)

		fret, ok = table.Fret(6, 43) // low E string, third fret
		require.True(t, ok)
		require.Equal(t, 3, fret)
	})

	t.Run("rejects notes off the fretboard", func(t *testing.T) {
		_, ok := table.Fret(1, 63) // below the open string
		require.False(t, ok)

		_, ok = table.Fret(1, 87) // one past the last fret
		require.False(t, ok)
	})

	t.Run("rejects unknown channels", func(t *testing.T) {
		_, ok := table.Fret(9, 64)
		require.False(t, ok)
	})
}

func TestTableResolve(t *testing.T) {
	table := buildTable(t)

	key, ok := table.Resolve(1, 0)
	require.True(t, ok)
	require.Equal(t, contracts.KeyShift, key)

	_, ok = table.Resolve(1, 22)
	require.False(t, ok, "empty cells resolve to nothing")

	_, ok = table.Resolve(1, -1)
	require.False(t, ok)

	_, ok = table.Resolve(1, mapping.NumFrets)
	require.False(t, ok)

	_, ok = table.Resolve(9, 0)
	require.False(t, ok)
}

func TestTableStringIndex(t *testing.T) {
	table := buildTable(t)

	row, ok := table.StringIndex(1)
	require.True(t, ok)
	require.Equal(t, 0, row)

	row, ok = table.StringIndex(6)
	require.True(t, ok)
	require.Equal(t, 5, row)

	_, ok = table.StringIndex(7)
	require.False(t, ok)
}

func TestTableGrid(t *testing.T) {
	table := buildTable(t)
	grid := table.Grid()

	require.Contains(t, grid, "Keyboard Mapping:")
	require.Contains(t, grid, "22\t", "fret numbers head the grid")
	require.Contains(t, grid, "1|shift")
	require.Contains(t, grid, "4|space")

	lines := strings.Split(strings.TrimRight(grid, "\n"), "\n")
	require.Len(t, lines, mapping.NumStrings+3, "title, fret header, rule, six strings")
}
