package engine

// TransitionKind classifies what a note event did to a string's state.
type TransitionKind int

const (
	// Ignored marks events with no state change: a note-off for a fret
	// the string is not sounding, or one that arrives while it is silent.
	// Guitar MIDI hardware emits such stragglers routinely; they are not
	// errors.
	Ignored TransitionKind = iota
	// Started marks a note-on landing on a silent string.
	Started
	// Ended marks a note-off for the fret the string was sounding.
	Ended
	// Restruck marks a note-on on a string that was already sounding.
	// The previous fret ends implicitly; the caller applies the end
	// effects before the start effects.
	Restruck
)

// String renders the kind for log lines.
func (k TransitionKind) String() string {
	switch k {
	case Started:
		return "started"
	case Ended:
		return "ended"
	case Restruck:
		return "restruck"
	default:
		return "ignored"
	}
}

// Transition reports how a string's state changed in response to one event.
type Transition struct {
	Kind     TransitionKind
	Fret     int // The fret that started or ended.
	PrevFret int // For Restruck, the fret that was interrupted.
}

// StringTracker holds the sounding state of one guitar string. A string can
// only sound one note at a time, so a note-on while sounding implies the end
// of the previous note. Note-offs are confirmations, never the sole source of
// truth: only the matching fret silences the string.
type StringTracker struct {
	sounding bool
	fret     int
}

// NoteOn records a fret starting to sound and reports whether it started
// fresh or cut off a previous note. Re-striking the fret already sounding
// reports Restruck with equal old and new frets, so the caller re-taps the
// mapped key.
func (t *StringTracker) NoteOn(fret int) Transition {
	if t.sounding {
		prev := t.fret
		t.fret = fret
		return Transition{Kind: Restruck, Fret: fret, PrevFret: prev}
	}
	t.sounding = true
	t.fret = fret
	return Transition{Kind: Started, Fret: fret}
}

// NoteOff records a fret going quiet. Offs for any fret other than the one
// sounding are reported as Ignored.
func (t *StringTracker) NoteOff(fret int) Transition {
	if !t.sounding || t.fret != fret {
		return Transition{Kind: Ignored}
	}
	t.sounding = false
	return Transition{Kind: Ended, Fret: fret}
}

// Sounding returns the current fret and whether the string is sounding at all.
func (t *StringTracker) Sounding() (int, bool) {
	return t.fret, t.sounding
}

// Reset silences the string without reporting a transition.
func (t *StringTracker) Reset() {
	t.sounding = false
}
