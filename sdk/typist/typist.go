// Package typist creates the keystroke injector for the running platform.
package typist

import (
	"github.com/fretkey/fretkey/sdk/contracts"
)

// NewTypist creates a new keystroke injector with the specified options.
// It applies default options and initializes the platform backend.
//
// opts ...contracts.TypistOption: A variadic list of option functions to customize the injector.
//
// Returns:
//   - contracts.Typist: An instance of the keystroke injector.
//   - error: An error, if any occurred during creation.
func NewTypist(opts ...contracts.TypistOption) (contracts.Typist, error) {
	options := applyDefaultOptions(opts...)

	injector, err := newPlatformTypist(options)
	if err != nil {
		return nil, err
	}

	return injector, nil
}
