package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fretkey/fretkey/internal/mapping"
)

func TestParseTuning(t *testing.T) {
	t.Run("empty flag selects standard tuning", func(t *testing.T) {
		tuning, err := parseTuning("")
		require.NoError(t, err)
		require.Equal(t, mapping.StandardTuning, tuning)
	})

	t.Run("parses a custom tuning", func(t *testing.T) {
		tuning, err := parseTuning("62,57,53,48,43,38")
		require.NoError(t, err)
		require.Equal(t, [mapping.NumStrings]uint8{62, 57, 53, 48, 43, 38}, tuning)
	})

	t.Run("allows spaces around notes", func(t *testing.T) {
		tuning, err := parseTuning("64, 59, 55, 50, 45, 40")
		require.NoError(t, err)
		require.Equal(t, mapping.StandardTuning, tuning)
	})

	t.Run("rejects the wrong note count", func(t *testing.T) {
		_, err := parseTuning("64,59,55")
		require.ErrorContains(t, err, "6 notes")
	})

	t.Run("rejects non-numeric notes", func(t *testing.T) {
		_, err := parseTuning("64,59,55,50,45,low-e")
		require.Error(t, err)
	})

	t.Run("rejects notes above the MIDI range", func(t *testing.T) {
		_, err := parseTuning("64,59,55,50,45,200")
		require.Error(t, err)
	})
}

func TestExitCode(t *testing.T) {
	t.Run("config errors exit 1", func(t *testing.T) {
		require.Equal(t, ExitConfig, exitCode(configErr(errors.New("bad mapping"))))
	})

	t.Run("device errors exit 2", func(t *testing.T) {
		require.Equal(t, ExitDevice, exitCode(deviceErr(errors.New("no device"))))
	})

	t.Run("wrapping preserves the classification", func(t *testing.T) {
		err := fmt.Errorf("session failed: %w", deviceErr(errors.New("gone")))
		require.Equal(t, ExitDevice, exitCode(err))
	})

	t.Run("unclassified errors default to config", func(t *testing.T) {
		require.Equal(t, ExitConfig, exitCode(errors.New("usage")))
	})
}

// writeMapping drops a minimal valid mapping file into a temp dir: channels
// 1-6 with three mapped cells in total.
func writeMapping(t *testing.T) string {
	t.Helper()

	blank := strings.Repeat(",", mapping.NumFrets)
	var b strings.Builder
	b.WriteString("string" + blank + "\n")
	for row := 0; row < mapping.NumStrings; row++ {
		cells := make([]string, mapping.NumFrets+1)
		cells[0] = fmt.Sprint(row + 1)
		switch row {
		case 0:
			cells[1] = "SH"
		case 1:
			cells[1] = "a"
		case 2:
			cells[3] = "b"
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}

	path := filepath.Join(t.TempDir(), "mapping.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	t.Run("prints the grid and the mapped cell count", func(t *testing.T) {
		path := writeMapping(t)

		out, err := runCommand(t, "check", path)
		require.NoError(t, err)
		require.Contains(t, out, "Keyboard Mapping:")
		require.Contains(t, out, "1|shift")
		require.Contains(t, out, "mapping OK: 3 cells mapped")
	})

	t.Run("invalid mapping exits with the config code", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.csv")
		require.NoError(t, os.WriteFile(path, []byte("just,two\n"), 0o600))

		_, err := runCommand(t, "check", path)
		require.ErrorIs(t, err, mapping.ErrRowCount)
		require.Equal(t, ExitConfig, exitCode(err))
	})

	t.Run("missing file exits with the config code", func(t *testing.T) {
		_, err := runCommand(t, "check", filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		require.Equal(t, ExitConfig, exitCode(err))
	})
}
