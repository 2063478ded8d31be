package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fretkey/fretkey/internal/midi/mididarwin"
	"github.com/fretkey/fretkey/internal/midi/midilinux"
	"github.com/fretkey/fretkey/internal/midi/midiwindows"
	"github.com/fretkey/fretkey/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // macOS (Darwin) via CoreMIDI.
	"windows": midiwindows.NewMIDIClient, // Windows via winmm.
	"linux":   midilinux.NewMIDIClient,   // Linux via rtmidi (ALSA).
}

// NewClient initializes a MIDI client based on the current operating system,
// returning ErrUnsupportedOS if there is no backend for it.
//
// opts *contracts.ClientOptions: Configuration options for the MIDI client.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error if the operating system is unsupported or if initialization fails.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
