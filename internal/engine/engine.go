// Package engine turns a stream of MIDI note events into ordered,
// deduplicated key events. Each MIDI channel is one guitar string; the engine
// tracks what every string is sounding, resolves frets to keys through the
// mapping table, and reference-counts keys so strings sharing a key never
// fight over it.
package engine

import (
	"context"
	"sync"

	"github.com/fretkey/fretkey/internal/mapping"
	"github.com/fretkey/fretkey/sdk/contracts"
)

// unmappedLabel stands in for the key name in log lines for cells with no
// mapping.
const unmappedLabel = "<unmapped>"

// Engine consumes one MIDI event at a time and drives key state through the
// mapping table. All state lives behind one mutex: events are serialized
// globally, which preserves per-string ordering and keeps a restrike's
// up-then-down pair atomic. Guitar event rates are tens per second, so one
// lock is plenty.
type Engine struct {
	logger contracts.Logger
	table  *mapping.Table
	keys   *KeyState

	mu       sync.Mutex
	trackers map[uint8]*StringTracker // One tracker per configured channel.
}

// New builds an engine over a loaded table, with one silent string tracker
// per configured channel. Key events flow into the sink.
func New(table *mapping.Table, sink Sink, log contracts.Logger) *Engine {
	trackers := make(map[uint8]*StringTracker, mapping.NumStrings)
	for _, channel := range table.Channels() {
		trackers[channel] = &StringTracker{}
	}
	return &Engine{
		logger:   log,
		table:    table,
		keys:     NewKeyState(sink, log),
		trackers: trackers,
	}
}

// Handle processes one MIDI event to completion. It is the single entry
// point for translation; calls are serialized internally.
func (e *Engine) Handle(event contracts.MIDI) {
	command := event.Command
	if command == byte(contracts.NoteOn) && event.Velocity == 0 {
		// Many controllers signal note-off as note-on with velocity zero.
		command = byte(contracts.NoteOff)
	}
	if command != byte(contracts.NoteOn) && command != byte(contracts.NoteOff) {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tracker, ok := e.trackers[event.Channel]
	if !ok {
		e.logger.Debug("No string mapped to channel",
			e.logger.Field().Uint8("channel", event.Channel))
		return
	}
	fret, ok := e.table.Fret(event.Channel, event.Note)
	if !ok {
		e.logger.Debug("Note outside fretboard",
			e.logger.Field().Uint8("channel", event.Channel),
			e.logger.Field().Uint8("note", event.Note))
		return
	}

	var transition Transition
	if command == byte(contracts.NoteOn) {
		transition = tracker.NoteOn(fret)
	} else {
		transition = tracker.NoteOff(fret)
	}

	e.apply(event.Channel, transition)

	row, _ := e.table.StringIndex(event.Channel)
	keyLabel := unmappedLabel
	if key, mapped := e.table.Resolve(event.Channel, fret); mapped {
		keyLabel = key.String()
	}
	e.logger.Info("Note event",
		e.logger.Field().Int("string", row),
		e.logger.Field().Int("fret", fret),
		e.logger.Field().Uint8("channel", event.Channel),
		e.logger.Field().Uint8("note", event.Note),
		e.logger.Field().String("key", keyLabel),
		e.logger.Field().String("action", transition.Kind.String()))
}

// apply maps a string transition onto key reference counts. Unmapped cells
// resolve to nothing and produce no effects; the string state still advanced,
// so a later off for that fret ends cleanly. Callers hold the mutex.
func (e *Engine) apply(channel uint8, transition Transition) {
	switch transition.Kind {
	case Started:
		if key, ok := e.table.Resolve(channel, transition.Fret); ok {
			e.keys.Reference(key)
		}
	case Ended:
		if key, ok := e.table.Resolve(channel, transition.Fret); ok {
			e.keys.Release(key)
		}
	case Restruck:
		// The interrupted note ends before the new one starts, so a
		// shared key goes up before it goes back down.
		if key, ok := e.table.Resolve(channel, transition.PrevFret); ok {
			e.keys.Release(key)
		}
		if key, ok := e.table.Resolve(channel, transition.Fret); ok {
			e.keys.Reference(key)
		}
	}
}

// Run consumes events until the channel closes or the context is canceled,
// then releases anything still held.
func (e *Engine) Run(ctx context.Context, events <-chan contracts.MIDI) {
	defer e.ReleaseAll()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			e.Handle(event)
		}
	}
}

// ReleaseAll lifts every held key and silences every string. It runs at
// shutdown and on device loss; calling it again is a no-op.
func (e *Engine) ReleaseAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys.ReleaseAll()
	for _, tracker := range e.trackers {
		tracker.Reset()
	}
}
