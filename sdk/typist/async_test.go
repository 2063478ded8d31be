package typist_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fretkey/fretkey/internal/logger"
	"github.com/fretkey/fretkey/sdk/contracts"
	"github.com/fretkey/fretkey/sdk/typist"
)

// fakeTypist records injected keystrokes. When gate is set, every injection
// blocks until the gate is closed, which lets a test hold the worker busy.
type fakeTypist struct {
	started chan struct{}
	gate    chan struct{}

	mu       sync.Mutex
	events   []string
	closed   bool
	closeErr error
}

func (f *fakeTypist) Press(key contracts.Key) error {
	return f.inject("down", key)
}

func (f *fakeTypist) Release(key contracts.Key) error {
	return f.inject("up", key)
}

func (f *fakeTypist) inject(event string, key contracts.Key) error {
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event+":"+key.String())
	return nil
}

func (f *fakeTypist) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.closeErr
}

func (f *fakeTypist) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *fakeTypist) wasClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestAsyncInjectsInOrder(t *testing.T) {
	fake := &fakeTypist{}
	async := typist.NewAsync(fake, logger.NewNop(), 0)

	require.NoError(t, async.Press(contracts.KeyA))
	require.NoError(t, async.Release(contracts.KeyA))
	require.NoError(t, async.Press(contracts.KeyShift))
	require.NoError(t, async.Close())

	require.Equal(t, []string{"down:a", "up:a", "down:shift"}, fake.recorded())
	require.True(t, fake.wasClosed())
}

func TestAsyncRejectsAfterClose(t *testing.T) {
	fake := &fakeTypist{}
	async := typist.NewAsync(fake, logger.NewNop(), 0)
	require.NoError(t, async.Close())

	require.ErrorIs(t, async.Press(contracts.KeyA), typist.ErrClosed)
	require.ErrorIs(t, async.Release(contracts.KeyA), typist.ErrClosed)
	require.Empty(t, fake.recorded())
}

func TestAsyncCloseIsIdempotent(t *testing.T) {
	teardownErr := errors.New("injector teardown failed")
	fake := &fakeTypist{closeErr: teardownErr}
	async := typist.NewAsync(fake, logger.NewNop(), 0)

	require.ErrorIs(t, async.Close(), teardownErr)
	require.ErrorIs(t, async.Close(), teardownErr)
}

func TestAsyncDropsWhenQueueIsFull(t *testing.T) {
	fake := &fakeTypist{
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	async := typist.NewAsync(fake, logger.NewNop(), 1)

	require.NoError(t, async.Press(contracts.KeyA))
	<-fake.started // The worker is now blocked inside the first injection.

	require.NoError(t, async.Press(contracts.KeyB)) // Fills the queue.
	require.NoError(t, async.Press(contracts.KeyC)) // Dropped without error.

	close(fake.gate)
	require.NoError(t, async.Close())

	require.Equal(t, []string{"down:a", "down:b"}, fake.recorded())
}
