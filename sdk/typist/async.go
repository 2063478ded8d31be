package typist

import (
	"errors"
	"sync"

	"github.com/fretkey/fretkey/sdk/contracts"
)

// ErrClosed is returned when a keystroke is requested after Close.
var ErrClosed = errors.New("typist closed")

// defaultQueueSize bounds the pending keystroke queue.
const defaultQueueSize = 128

// actionKind distinguishes queued keystroke operations.
type actionKind int

const (
	actionPress actionKind = iota
	actionRelease
)

type action struct {
	kind actionKind
	key  contracts.Key
}

// Async wraps a Typist so that keystrokes are injected from a dedicated
// worker goroutine instead of the caller's. Enqueueing never blocks: when
// the queue is full the keystroke is dropped with a warning, which keeps a
// stalled OS injection call from backing up into MIDI handling.
//
// Async itself satisfies contracts.Typist.
type Async struct {
	typist contracts.Typist
	logger contracts.Logger
	queue  chan action
	done   chan struct{} // Closed when the worker has drained the queue and exited.

	mu        sync.Mutex // Guards closed against concurrent enqueue and Close.
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// NewAsync starts the worker goroutine around the given injector.
// A queueSize of zero or less selects the default.
func NewAsync(injector contracts.Typist, log contracts.Logger, queueSize int) *Async {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	a := &Async{
		typist: injector,
		logger: log,
		queue:  make(chan action, queueSize),
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

// run executes queued keystrokes in order until the queue is closed.
func (a *Async) run() {
	defer close(a.done)
	for act := range a.queue {
		var err error
		switch act.kind {
		case actionPress:
			err = a.typist.Press(act.key)
		case actionRelease:
			err = a.typist.Release(act.key)
		}
		if err != nil {
			a.logger.Error("Keystroke injection failed",
				a.logger.Field().String("key", act.key.String()),
				a.logger.Field().Error("error", err))
		}
	}
}

// Press queues a key-down for the worker.
func (a *Async) Press(key contracts.Key) error {
	return a.enqueue(action{kind: actionPress, key: key})
}

// Release queues a key-up for the worker.
func (a *Async) Release(key contracts.Key) error {
	return a.enqueue(action{kind: actionRelease, key: key})
}

func (a *Async) enqueue(act action) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- act:
	default:
		a.logger.Warn("Keystroke queue full; dropping keystroke",
			a.logger.Field().String("key", act.key.String()))
	}
	return nil
}

// Close stops accepting keystrokes, waits for the worker to drain everything
// already queued, and then closes the underlying injector. Safe to call more
// than once; later calls return the first result.
func (a *Async) Close() error {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.queue)
		a.mu.Unlock()

		<-a.done
		a.closeErr = a.typist.Close()
	})
	return a.closeErr
}
