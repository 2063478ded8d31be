//go:build !darwin
// +build !darwin

package typistdarwin

import (
	"fmt"

	"github.com/fretkey/fretkey/sdk/contracts"
)

type dummyTypist struct {
	logger contracts.Logger
}

// NewTypist initializes a dummy keystroke injector for non-macOS systems.
func NewTypist(options *contracts.TypistOptions) (contracts.Typist, error) {
	options.Logger.Info("Using dummy typist for non-macOS system")
	return &dummyTypist{
		logger: options.Logger,
	}, nil
}

func (t *dummyTypist) Press(key contracts.Key) error {
	t.logger.Warn("Press called on dummy typist")
	return fmt.Errorf("keystroke injection is not available on this platform")
}

func (t *dummyTypist) Release(key contracts.Key) error {
	t.logger.Warn("Release called on dummy typist")
	return fmt.Errorf("keystroke injection is not available on this platform")
}

func (t *dummyTypist) Close() error {
	return nil
}
