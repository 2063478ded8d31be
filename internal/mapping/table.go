// Package mapping loads and queries the fretboard-to-key table that drives
// translation. A table row pairs one MIDI channel (one guitar string) with a
// key cell per fret; rows appear in tuning order, high E string first.
package mapping

import (
	"fmt"
	"strings"

	"github.com/fretkey/fretkey/sdk/contracts"
)

const (
	// NumStrings is the number of guitar strings and therefore table rows.
	NumStrings = 6
	// NumFrets is the number of key cells per string: 22 frets plus the
	// open string.
	NumFrets = 23
)

// StandardTuning holds the open-string MIDI notes in table row order,
// high E to low E.
var StandardTuning = [NumStrings]uint8{64, 59, 55, 50, 45, 40}

// Table maps (channel, fret) positions to keyboard keys. It is built once at
// load time and read-only afterward, so it is safe to share without locking.
type Table struct {
	channels [NumStrings]uint8                   // Channel for each string row, in file order.
	tuning   [NumStrings]uint8                   // Open-string MIDI note per row.
	keys     [NumStrings][NumFrets]contracts.Key // KeyNone marks an unmapped cell.
	rows     map[uint8]int                       // Channel to string row.
}

// StringIndex returns the table row for a channel, counting from the high E
// string. The second result is false when no string uses the channel.
func (t *Table) StringIndex(channel uint8) (int, bool) {
	row, ok := t.rows[channel]
	return row, ok
}

// Fret converts a MIDI note on the given channel to a fret index. The second
// result is false when no string uses the channel or the note falls outside
// the fretboard for that string's tuning.
func (t *Table) Fret(channel uint8, note uint8) (int, bool) {
	row, ok := t.rows[channel]
	if !ok {
		return 0, false
	}
	fret := int(note) - int(t.tuning[row])
	if fret < 0 || fret >= NumFrets {
		return 0, false
	}
	return fret, true
}

// Resolve returns the key mapped at (channel, fret). The second result is
// false for unmapped cells, unknown channels, and out-of-range frets; none of
// those are errors.
func (t *Table) Resolve(channel uint8, fret int) (contracts.Key, bool) {
	row, ok := t.rows[channel]
	if !ok || fret < 0 || fret >= NumFrets {
		return contracts.KeyNone, false
	}
	key := t.keys[row][fret]
	if key == contracts.KeyNone {
		return contracts.KeyNone, false
	}
	return key, true
}

// Channels lists the configured MIDI channels in string order.
func (t *Table) Channels() []uint8 {
	channels := make([]uint8, NumStrings)
	copy(channels, t.channels[:])
	return channels
}

// Grid renders the table in fretboard layout, one line per string, for the
// startup printout.
func (t *Table) Grid() string {
	var b strings.Builder
	b.WriteString("Keyboard Mapping:\n")
	for fret := 0; fret < NumFrets; fret++ {
		fmt.Fprintf(&b, "%d\t", fret)
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("----", NumFrets))
	b.WriteByte('\n')
	for row := 0; row < NumStrings; row++ {
		fmt.Fprintf(&b, "%d|", t.channels[row])
		for fret := 0; fret < NumFrets; fret++ {
			if key := t.keys[row][fret]; key != contracts.KeyNone {
				b.WriteString(key.String())
			}
			b.WriteByte('\t')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
