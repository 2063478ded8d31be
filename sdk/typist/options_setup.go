package typist

import (
	"github.com/fretkey/fretkey/internal/logger"
	"github.com/fretkey/fretkey/sdk/contracts"
)

const (
	// defaultKeyboardName names the virtual keyboard registered with the OS.
	defaultKeyboardName = "fretkey"
	// defaultUinputPath is where Linux exposes the uinput device node.
	defaultUinputPath = "/dev/uinput"
)

// applyDefaultOptions sets default values for TypistOptions if not explicitly provided.
func applyDefaultOptions(opts ...contracts.TypistOption) *contracts.TypistOptions {
	options := &contracts.TypistOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.KeyboardName == "" {
		options.KeyboardName = defaultKeyboardName
	}
	if options.UinputPath == "" {
		options.UinputPath = defaultUinputPath
	}

	return options
}
