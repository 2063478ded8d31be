package contracts

import "errors"

// ErrUnmappedKey is returned when a backend has no platform code for a Key.
// The vocabulary tables are meant to be complete; hitting this is a backend
// bug, so callers log it and keep going rather than aborting the session.
var ErrUnmappedKey = errors.New("key has no platform code")

// Typist injects synthetic key events into the operating system. Press holds
// a key down until the matching Release; callers are responsible for pairing
// them (the engine's reference counting guarantees it). Implementations need
// not be safe for concurrent use; sessions serialize calls through one
// worker (see sdk/typist.Async).
type Typist interface {
	Press(key Key) error
	Release(key Key) error
	Close() error
}

// TypistOptions defines the configuration options for a keystroke injector.
type TypistOptions struct {
	Logger       Logger // Logger for logging injection problems.
	KeyboardName string // Name the virtual keyboard registers with the OS (where applicable).
	UinputPath   string // Linux uinput device node, normally /dev/uinput.
}

// TypistOption is a function that modifies TypistOptions.
type TypistOption func(*TypistOptions)

// WithTypistLogger sets the logger for the injector.
func WithTypistLogger(l Logger) TypistOption {
	return func(opts *TypistOptions) {
		opts.Logger = l
	}
}

// WithKeyboardName sets the name the virtual keyboard registers with the OS.
func WithKeyboardName(name string) TypistOption {
	return func(opts *TypistOptions) {
		opts.KeyboardName = name
	}
}

// WithUinputPath overrides the uinput device node on Linux.
func WithUinputPath(path string) TypistOption {
	return func(opts *TypistOptions) {
		opts.UinputPath = path
	}
}
