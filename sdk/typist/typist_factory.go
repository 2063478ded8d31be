package typist

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fretkey/fretkey/internal/typist/typistdarwin"
	"github.com/fretkey/fretkey/internal/typist/typistlinux"
	"github.com/fretkey/fretkey/internal/typist/typistwindows"
	"github.com/fretkey/fretkey/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the keystroke injector.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// typistInitializers maps OS names to corresponding keystroke injector initializers.
var typistInitializers = map[string]func(*contracts.TypistOptions) (contracts.Typist, error){
	"darwin":  typistdarwin.NewTypist,  // macOS (Darwin) via Quartz event posting.
	"windows": typistwindows.NewTypist, // Windows via SendInput.
	"linux":   typistlinux.NewTypist,   // Linux via uinput.
}

// newPlatformTypist initializes a keystroke injector based on the current
// operating system, returning ErrUnsupportedOS if there is no backend for it.
func newPlatformTypist(opts *contracts.TypistOptions) (contracts.Typist, error) {
	if initializer, exists := typistInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
