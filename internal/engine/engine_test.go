package engine_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fretkey/fretkey/internal/engine"
	"github.com/fretkey/fretkey/internal/logger"
	"github.com/fretkey/fretkey/internal/mapping"
	"github.com/fretkey/fretkey/sdk/contracts"
)

// header and row build mapping CSV lines with the right number of cells.
func header() string {
	fields := make([]string, mapping.NumFrets+1)
	fields[0] = "string"
	for i := 0; i < mapping.NumFrets; i++ {
		fields[i+1] = strconv.Itoa(i)
	}
	return strings.Join(fields, ",")
}

func row(channel string, cells map[int]string) string {
	fields := make([]string, mapping.NumFrets+1)
	fields[0] = channel
	for fret, key := range cells {
		fields[fret+1] = key
	}
	return strings.Join(fields, ",")
}

// testTable uses standard tuning: string rows 1-6 are open at MIDI notes
// 64, 59, 55, 50, 45, 40.
func testTable(t *testing.T) *mapping.Table {
	t.Helper()
	csv := strings.Join([]string{
		header(),
		row("1", map[int]string{0: "SH", 1: "a"}),
		row("2", map[int]string{0: "SH", 1: "b"}),
		row("3", map[int]string{5: "g", 6: "f"}),
		row("4", map[int]string{0: "SP"}),
		row("5", map[int]string{0: "EN"}),
		row("6", nil),
	}, "\n")
	table, err := mapping.Parse(strings.NewReader(csv), mapping.StandardTuning)
	require.NoError(t, err)
	return table
}

func newTestEngine(t *testing.T) (*engine.Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	return engine.New(testTable(t), rec, logger.Wrap(zaptest.NewLogger(t))), rec
}

func noteOn(channel, note, velocity uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOn), Channel: channel, Note: note, Velocity: velocity}
}

func noteOff(channel, note uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOff), Channel: channel, Note: note}
}

func TestEngineSharedKey(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(1, 64, 100)) // string 1 open: shift
	eng.Handle(noteOn(2, 59, 100)) // string 2 open: shift again
	require.Equal(t, []string{"down:shift"}, rec.events, "a shared key goes down once")

	eng.Handle(noteOff(1, 64))
	require.Equal(t, []string{"down:shift"}, rec.events, "shift is still wanted by string 2")

	eng.Handle(noteOff(2, 59))
	require.Equal(t, []string{"down:shift", "up:shift"}, rec.events)
}

func TestEngineRestrike(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(3, 60, 100)) // fret 5: g
	eng.Handle(noteOn(3, 61, 100)) // fret 6, no off in between: f
	require.Equal(t, []string{"down:g", "up:g", "down:f"}, rec.events,
		"the old key must come up before the new one goes down")
}

func TestEngineSameFretRestrike(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(3, 60, 100))
	eng.Handle(noteOn(3, 60, 100))
	require.Equal(t, []string{"down:g", "up:g", "down:g"}, rec.events,
		"re-picking a note re-taps its key")
}

func TestEngineStaleOff(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(1, 65, 100)) // fret 1: a
	eng.Handle(noteOff(1, 65))
	eng.Handle(noteOff(1, 65))
	require.Equal(t, []string{"down:a", "up:a"}, rec.events, "a duplicate off has no effect")
}

func TestEngineVelocityZeroNoteOn(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(1, 65, 100))
	eng.Handle(noteOn(1, 65, 0)) // note-on at velocity zero is an off
	require.Equal(t, []string{"down:a", "up:a"}, rec.events)
}

func TestEngineUnmappedCell(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(6, 43, 100)) // string 6 fret 3: no mapping
	require.Empty(t, rec.events)

	// The string still advanced to sounding, so the off ends it quietly.
	eng.Handle(noteOff(6, 43))
	eng.Handle(noteOff(6, 43))
	require.Empty(t, rec.events)
}

func TestEngineUnmappedThenMappedRestrike(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(3, 62, 100)) // fret 7: sounding but unmapped
	require.Empty(t, rec.events)

	eng.Handle(noteOn(3, 60, 100)) // restrike onto fret 5: g
	require.Equal(t, []string{"down:g"}, rec.events, "the interrupted fret had no key to lift")

	eng.Handle(noteOff(3, 62)) // stale off for the interrupted fret
	require.Equal(t, []string{"down:g"}, rec.events)
}

func TestEngineIgnoresOutsiders(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(1, 63, 100)) // below the open string
	eng.Handle(noteOn(1, 87, 100)) // past the last fret
	eng.Handle(noteOn(9, 60, 100)) // channel without a string
	eng.Handle(contracts.MIDI{Command: 0xB0, Channel: 1, Note: 64}) // not a note command
	require.Empty(t, rec.events)
}

func TestEngineReleaseAll(t *testing.T) {
	eng, rec := newTestEngine(t)

	eng.Handle(noteOn(1, 64, 100)) // shift
	eng.Handle(noteOn(2, 59, 100)) // shift, count 2
	eng.Handle(noteOn(4, 50, 100)) // space
	rec.events = nil

	eng.ReleaseAll()
	require.ElementsMatch(t, []string{"up:shift", "up:space"}, rec.events,
		"each held key comes up exactly once")

	rec.events = nil
	eng.ReleaseAll()
	require.Empty(t, rec.events)

	// Strings were silenced too, so the next on starts fresh.
	eng.Handle(noteOn(1, 64, 100))
	require.Equal(t, []string{"down:shift"}, rec.events)
}

func TestEngineRunDrainsAndReleases(t *testing.T) {
	eng, rec := newTestEngine(t)

	events := make(chan contracts.MIDI, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		eng.Run(context.Background(), events)
	}()

	events <- noteOn(1, 64, 100)
	events <- noteOn(4, 50, 100)
	close(events)
	<-done

	require.Equal(t, []string{"down:shift", "down:space"}, rec.events[:2])
	require.ElementsMatch(t, []string{"up:shift", "up:space"}, rec.events[2:],
		"run releases everything still held on exit")
}

func TestEngineRunStopsOnCancel(t *testing.T) {
	eng, rec := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan contracts.MIDI)
	done := make(chan struct{})
	go func() {
		defer close(done)
		eng.Run(ctx, events)
	}()

	cancel()
	<-done
	require.Empty(t, rec.events)
}
