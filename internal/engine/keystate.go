package engine

import (
	"github.com/fretkey/fretkey/sdk/contracts"
)

// Sink receives the key events the engine decides to emit. contracts.Typist
// satisfies it directly.
type Sink interface {
	Press(key contracts.Key) error
	Release(key contracts.Key) error
}

// KeyState reference-counts how many sounding notes want each key held.
// Several strings may map to the same key; the key goes down when the first
// note arrives and comes up only when the last one ends. KeyState is the only
// place key events originate.
type KeyState struct {
	logger contracts.Logger
	sink   Sink
	counts map[contracts.Key]int
}

// NewKeyState creates an empty key state emitting into the given sink.
func NewKeyState(sink Sink, log contracts.Logger) *KeyState {
	return &KeyState{
		logger: log,
		sink:   sink,
		counts: make(map[contracts.Key]int),
	}
}

// Reference records one more sounding note wanting the key. The first
// reference presses it.
func (s *KeyState) Reference(key contracts.Key) {
	s.counts[key]++
	if s.counts[key] == 1 {
		s.logger.Debug("Key down",
			s.logger.Field().String("key", key.String()))
		if err := s.sink.Press(key); err != nil {
			s.logger.Error("Key press failed",
				s.logger.Field().String("key", key.String()),
				s.logger.Field().Error("error", err))
		}
	}
}

// Release records one sounding note no longer wanting the key. The last
// release lifts it. Releasing a key with no references is a no-op; stray
// releases come out of the same hardware quirks as stray note-offs.
func (s *KeyState) Release(key contracts.Key) {
	count, ok := s.counts[key]
	if !ok || count == 0 {
		return
	}
	if count == 1 {
		delete(s.counts, key)
		s.logger.Debug("Key up",
			s.logger.Field().String("key", key.String()))
		if err := s.sink.Release(key); err != nil {
			s.logger.Error("Key release failed",
				s.logger.Field().String("key", key.String()),
				s.logger.Field().Error("error", err))
		}
		return
	}
	s.counts[key] = count - 1
}

// ReleaseAll lifts every held key and clears all counts. It runs at shutdown
// and on device loss so no key stays physically stuck once the process stops
// controlling it.
func (s *KeyState) ReleaseAll() {
	for key := range s.counts {
		s.logger.Debug("Key up",
			s.logger.Field().String("key", key.String()))
		if err := s.sink.Release(key); err != nil {
			s.logger.Error("Key release failed",
				s.logger.Field().String("key", key.String()),
				s.logger.Field().Error("error", err))
		}
	}
	s.counts = make(map[contracts.Key]int)
}

// Held returns how many keys are currently down.
func (s *KeyState) Held() int {
	return len(s.counts)
}
