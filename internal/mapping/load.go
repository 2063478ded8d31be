package mapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fretkey/fretkey/sdk/contracts"
)

// Error definitions for mapping file validation. All of them are fatal at
// startup; a table is never built from a partially valid file.
var (
	ErrRowCount         = errors.New("mapping file must have a header and one row per string")
	ErrRowWidth         = errors.New("mapping row must have a channel and one key cell per fret")
	ErrBadChannel       = errors.New("invalid MIDI channel")
	ErrDuplicateChannel = errors.New("duplicate MIDI channel")
)

// Parse reads a fretboard mapping in CSV form and builds the lookup table.
//
// The first record is a header naming the fret columns and is not
// interpreted. Each following record holds a MIDI channel and one key token
// per fret; empty cells leave the position unmapped. Lines starting with '#'
// are comments.
//
// tuning [NumStrings]uint8: Open-string MIDI notes in row order.
//
// Returns:
//   - *Table: The validated lookup table.
//   - error: An error describing the first invalid row or cell.
func Parse(r io.Reader, tuning [NumStrings]uint8) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading mapping file: %w", err)
	}
	if len(records) != NumStrings+1 {
		return nil, fmt.Errorf("%w: got %d records, want %d", ErrRowCount, len(records), NumStrings+1)
	}

	table := &Table{
		tuning: tuning,
		rows:   make(map[uint8]int, NumStrings),
	}

	for row, record := range records[1:] {
		if len(record) != NumFrets+1 {
			return nil, fmt.Errorf("row %d: %w: got %d fields, want %d", row+1, ErrRowWidth, len(record), NumFrets+1)
		}

		channel, err := strconv.ParseUint(strings.TrimSpace(record[0]), 10, 8)
		if err != nil || channel < 1 || channel > 16 {
			return nil, fmt.Errorf("row %d: %w: %q", row+1, ErrBadChannel, record[0])
		}
		if _, exists := table.rows[uint8(channel)]; exists {
			return nil, fmt.Errorf("row %d: %w: channel %d", row+1, ErrDuplicateChannel, channel)
		}

		table.channels[row] = uint8(channel)
		table.rows[uint8(channel)] = row

		for fret, cell := range record[1:] {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			key, err := contracts.ParseKey(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d fret %d: %w", row+1, fret, err)
			}
			table.keys[row][fret] = key
		}
	}

	return table, nil
}

// Load reads and parses the mapping file at path.
func Load(path string, tuning [NumStrings]uint8) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening mapping file: %w", err)
	}
	defer f.Close()
	return Parse(f, tuning)
}
