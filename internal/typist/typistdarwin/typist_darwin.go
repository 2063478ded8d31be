//go:build darwin
// +build darwin

package typistdarwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>

static void postKeyEvent(CGKeyCode code, bool down) {
	CGEventRef event = CGEventCreateKeyboardEvent(NULL, code, down);
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
}
*/
import "C"

import (
	"fmt"

	"github.com/fretkey/fretkey/sdk/contracts"
)

// keyCodes maps keys to macOS virtual key codes (kVK_* from Carbon's Events.h).
// These identify physical keys on the ANSI layout.
var keyCodes = map[contracts.Key]uint16{
	contracts.KeyShift:     56, // kVK_Shift
	contracts.KeyCtrl:      59, // kVK_Control
	contracts.KeyAlt:       58, // kVK_Option
	contracts.KeySuper:     55, // kVK_Command
	contracts.KeySpace:     49,
	contracts.KeyTab:       48,
	contracts.KeyBackspace: 51, // kVK_Delete
	contracts.KeyEnter:     36, // kVK_Return
	contracts.KeyEscape:    53,
	contracts.KeyLeft:      123,
	contracts.KeyRight:     124,
	contracts.KeyDown:      125,
	contracts.KeyUp:        126,

	contracts.KeyA: 0,
	contracts.KeyB: 11,
	contracts.KeyC: 8,
	contracts.KeyD: 2,
	contracts.KeyE: 14,
	contracts.KeyF: 3,
	contracts.KeyG: 5,
	contracts.KeyH: 4,
	contracts.KeyI: 34,
	contracts.KeyJ: 38,
	contracts.KeyK: 40,
	contracts.KeyL: 37,
	contracts.KeyM: 46,
	contracts.KeyN: 45,
	contracts.KeyO: 31,
	contracts.KeyP: 35,
	contracts.KeyQ: 12,
	contracts.KeyR: 15,
	contracts.KeyS: 1,
	contracts.KeyT: 17,
	contracts.KeyU: 32,
	contracts.KeyV: 9,
	contracts.KeyW: 13,
	contracts.KeyX: 7,
	contracts.KeyY: 16,
	contracts.KeyZ: 6,

	contracts.Key1: 18,
	contracts.Key2: 19,
	contracts.Key3: 20,
	contracts.Key4: 21,
	contracts.Key5: 23,
	contracts.Key6: 22,
	contracts.Key7: 26,
	contracts.Key8: 28,
	contracts.Key9: 25,
	contracts.Key0: 29,

	contracts.KeyMinus:      27,
	contracts.KeyEqual:      24,
	contracts.KeyLeftBrace:  33,
	contracts.KeyRightBrace: 30,
	contracts.KeyBackslash:  42,
	contracts.KeySemicolon:  41,
	contracts.KeyApostrophe: 39,
	contracts.KeyComma:      43,
	contracts.KeyDot:        47,
	contracts.KeySlash:      44,
	contracts.KeyGrave:      50,
}

// Typist injects keystrokes on macOS by posting Quartz keyboard events to the
// HID event tap. The process needs Accessibility permission for the events to
// reach other applications.
type Typist struct {
	logger contracts.Logger
}

// NewTypist creates a keystroke injector for macOS.
func NewTypist(options *contracts.TypistOptions) (contracts.Typist, error) {
	options.Logger.Info("Keystroke injector created for macOS")
	return &Typist{
		logger: options.Logger,
	}, nil
}

// Press sends a key-down event for the given key.
func (t *Typist) Press(key contracts.Key) error {
	return t.post(key, true)
}

// Release sends a key-up event for the given key.
func (t *Typist) Release(key contracts.Key) error {
	return t.post(key, false)
}

func (t *Typist) post(key contracts.Key, down bool) error {
	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", contracts.ErrUnmappedKey, key)
	}
	C.postKeyEvent(C.CGKeyCode(code), C.bool(down))
	return nil
}

// Close releases nothing; posted events hold no OS resources.
func (t *Typist) Close() error {
	return nil
}
