//go:build linux
// +build linux

package typistlinux

import (
	"fmt"

	"github.com/bendahl/uinput"

	"github.com/fretkey/fretkey/sdk/contracts"
)

// keyCodes maps keys to Linux input event codes from input-event-codes.h.
var keyCodes = map[contracts.Key]int{
	contracts.KeyShift:     42,  // KEY_LEFTSHIFT
	contracts.KeyCtrl:      29,  // KEY_LEFTCTRL
	contracts.KeyAlt:       56,  // KEY_LEFTALT
	contracts.KeySuper:     125, // KEY_LEFTMETA
	contracts.KeySpace:     57,
	contracts.KeyTab:       15,
	contracts.KeyBackspace: 14,
	contracts.KeyEnter:     28,
	contracts.KeyEscape:    1,
	contracts.KeyLeft:      105,
	contracts.KeyUp:        103,
	contracts.KeyRight:     106,
	contracts.KeyDown:      108,

	contracts.KeyA: 30,
	contracts.KeyB: 48,
	contracts.KeyC: 46,
	contracts.KeyD: 32,
	contracts.KeyE: 18,
	contracts.KeyF: 33,
	contracts.KeyG: 34,
	contracts.KeyH: 35,
	contracts.KeyI: 23,
	contracts.KeyJ: 36,
	contracts.KeyK: 37,
	contracts.KeyL: 38,
	contracts.KeyM: 50,
	contracts.KeyN: 49,
	contracts.KeyO: 24,
	contracts.KeyP: 25,
	contracts.KeyQ: 16,
	contracts.KeyR: 19,
	contracts.KeyS: 31,
	contracts.KeyT: 20,
	contracts.KeyU: 22,
	contracts.KeyV: 47,
	contracts.KeyW: 17,
	contracts.KeyX: 45,
	contracts.KeyY: 21,
	contracts.KeyZ: 44,

	contracts.Key1: 2,
	contracts.Key2: 3,
	contracts.Key3: 4,
	contracts.Key4: 5,
	contracts.Key5: 6,
	contracts.Key6: 7,
	contracts.Key7: 8,
	contracts.Key8: 9,
	contracts.Key9: 10,
	contracts.Key0: 11,

	contracts.KeyMinus:      12,
	contracts.KeyEqual:      13,
	contracts.KeyLeftBrace:  26,
	contracts.KeyRightBrace: 27,
	contracts.KeyBackslash:  43,
	contracts.KeySemicolon:  39,
	contracts.KeyApostrophe: 40,
	contracts.KeyComma:      51,
	contracts.KeyDot:        52,
	contracts.KeySlash:      53,
	contracts.KeyGrave:      41,
}

// Typist injects keystrokes on Linux through a virtual uinput keyboard.
type Typist struct {
	logger   contracts.Logger
	keyboard uinput.Keyboard
}

// NewTypist registers a virtual keyboard with the kernel. Creating it
// requires write access to the uinput device node.
func NewTypist(options *contracts.TypistOptions) (contracts.Typist, error) {
	keyboard, err := uinput.CreateKeyboard(options.UinputPath, []byte(options.KeyboardName))
	if err != nil {
		return nil, fmt.Errorf("error creating uinput keyboard at %s: %w", options.UinputPath, err)
	}
	options.Logger.Info("Virtual keyboard created",
		options.Logger.Field().String("device", options.UinputPath),
		options.Logger.Field().String("name", options.KeyboardName))

	return &Typist{
		logger:   options.Logger,
		keyboard: keyboard,
	}, nil
}

// Press sends a key-down event for the given key.
func (t *Typist) Press(key contracts.Key) error {
	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", contracts.ErrUnmappedKey, key)
	}
	return t.keyboard.KeyDown(code)
}

// Release sends a key-up event for the given key.
func (t *Typist) Release(key contracts.Key) error {
	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", contracts.ErrUnmappedKey, key)
	}
	return t.keyboard.KeyUp(code)
}

// Close destroys the virtual keyboard.
func (t *Typist) Close() error {
	t.logger.Info("Destroying virtual keyboard")
	return t.keyboard.Close()
}
