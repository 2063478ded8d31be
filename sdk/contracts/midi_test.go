package contracts_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fretkey/fretkey/sdk/contracts"
)

func TestParseEvent(t *testing.T) {
	t.Run("splits status into command and 1-based channel", func(t *testing.T) {
		event := contracts.ParseEvent(0x91, 64, 100, 42)
		require.Equal(t, byte(contracts.NoteOn), event.Command)
		require.Equal(t, uint8(2), event.Channel)
		require.Equal(t, byte(64), event.Note)
		require.Equal(t, byte(100), event.Velocity)
		require.Equal(t, uint64(42), event.Timestamp)
	})

	t.Run("channel nibble zero is channel one", func(t *testing.T) {
		event := contracts.ParseEvent(0x80, 40, 0, 0)
		require.Equal(t, byte(contracts.NoteOff), event.Command)
		require.Equal(t, uint8(1), event.Channel)
	})

	t.Run("channel nibble fifteen is channel sixteen", func(t *testing.T) {
		event := contracts.ParseEvent(0x9F, 0, 0, 0)
		require.Equal(t, uint8(16), event.Channel)
	})
}

func TestMIDIEventFilterAllows(t *testing.T) {
	t.Run("nil filter passes everything", func(t *testing.T) {
		var filter *contracts.MIDIEventFilter
		require.True(t, filter.Allows(byte(contracts.NoteOn)))
		require.True(t, filter.Allows(0xB0))
	})

	t.Run("listed commands pass", func(t *testing.T) {
		filter := &contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}
		require.True(t, filter.Allows(byte(contracts.NoteOn)))
		require.True(t, filter.Allows(byte(contracts.NoteOff)))
	})

	t.Run("unlisted commands are rejected", func(t *testing.T) {
		filter := &contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn},
		}
		require.False(t, filter.Allows(byte(contracts.NoteOff)))
		require.False(t, filter.Allows(0xB0))
	})
}
