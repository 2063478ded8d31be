package midi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fretkey/fretkey/sdk/contracts"
	"github.com/fretkey/fretkey/sdk/midi"
)

func TestFindDevice(t *testing.T) {
	devices := []contracts.DeviceInfo{
		{Name: "Midi Through Port-0"},
		{Name: "Fishman TriplePlay", Manufacturer: "Fishman"},
		{Name: "TriplePlay Express"},
	}

	t.Run("matches a substring case-insensitively", func(t *testing.T) {
		index, err := midi.FindDevice(devices, "fishman")
		require.NoError(t, err)
		require.Equal(t, 1, index)
	})

	t.Run("returns the first of several matches", func(t *testing.T) {
		index, err := midi.FindDevice(devices, "TriplePlay")
		require.NoError(t, err)
		require.Equal(t, 1, index)
	})

	t.Run("empty query matches the first device", func(t *testing.T) {
		index, err := midi.FindDevice(devices, "")
		require.NoError(t, err)
		require.Equal(t, 0, index)
	})

	t.Run("reports the query when nothing matches", func(t *testing.T) {
		_, err := midi.FindDevice(devices, "keystation")
		require.ErrorIs(t, err, midi.ErrDeviceNotFound)
		require.ErrorContains(t, err, "keystation")
	})

	t.Run("no devices at all", func(t *testing.T) {
		_, err := midi.FindDevice(nil, "anything")
		require.ErrorIs(t, err, midi.ErrDeviceNotFound)
	})
}
