//go:build !windows
// +build !windows

package typistwindows

import (
	"fmt"

	"github.com/fretkey/fretkey/sdk/contracts"
)

type dummyTypist struct {
	logger contracts.Logger
}

// NewTypist initializes a dummy keystroke injector for non-Windows systems.
func NewTypist(options *contracts.TypistOptions) (contracts.Typist, error) {
	options.Logger.Info("Using dummy typist for non-Windows system")
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
