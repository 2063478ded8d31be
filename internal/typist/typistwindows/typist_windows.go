//go:build windows
// +build windows

package typistwindows

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/fretkey/fretkey/sdk/contracts"
)

// Constants for SendInput.
const (
	INPUT_KEYBOARD = 1

	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002
)

// keybdInput mirrors the KEYBDINPUT structure.
type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors the INPUT structure for 64-bit Windows: the union starts at
// offset 8 and is sized for MOUSEINPUT, its largest member.
type input struct {
	inputType uint32
	_         uint32
	ki        keybdInput
	_         [8]byte
}

// keyCodes maps keys to Windows virtual-key codes.
var keyCodes = map[contracts.Key]uint16{
	contracts.KeyShift:     0x10, // VK_SHIFT
	contracts.KeyCtrl:      0x11, // VK_CONTROL
	contracts.KeyAlt:       0x12, // VK_MENU
	contracts.KeySuper:     0x5B, // VK_LWIN
	contracts.KeySpace:     0x20,
	contracts.KeyTab:       0x09,
	contracts.KeyBackspace: 0x08,
	contracts.KeyEnter:     0x0D,
	contracts.KeyEscape:    0x1B,
	contracts.KeyLeft:      0x25,
	contracts.KeyUp:        0x26,
	contracts.KeyRight:     0x27,
	contracts.KeyDown:      0x28,

	contracts.KeyA: 0x41,
	contracts.KeyB: 0x42,
	contracts.KeyC: 0x43,
	contracts.KeyD: 0x44,
	contracts.KeyE: 0x45,
	contracts.KeyF: 0x46,
	contracts.KeyG: 0x47,
	contracts.KeyH: 0x48,
	contracts.KeyI: 0x49,
	contracts.KeyJ: 0x4A,
	contracts.KeyK: 0x4B,
	contracts.KeyL: 0x4C,
	contracts.KeyM: 0x4D,
	contracts.KeyN: 0x4E,
	contracts.KeyO: 0x4F,
	contracts.KeyP: 0x50,
	contracts.KeyQ: 0x51,
	contracts.KeyR: 0x52,
	contracts.KeyS: 0x53,
	contracts.KeyT: 0x54,
	contracts.KeyU: 0x55,
	contracts.KeyV: 0x56,
	contracts.KeyW: 0x57,
	contracts.KeyX: 0x58,
	contracts.KeyY: 0x59,
	contracts.KeyZ: 0x5A,

	contracts.Key0: 0x30,
	contracts.Key1: 0x31,
	contracts.Key2: 0x32,
	contracts.Key3: 0x33,
	contracts.Key4: 0x34,
	contracts.Key5: 0x35,
	contracts.Key6: 0x36,
	contracts.Key7: 0x37,
	contracts.Key8: 0x38,
	contracts.Key9: 0x39,

	contracts.KeySemicolon:  0xBA, // VK_OEM_1
	contracts.KeyEqual:      0xBB, // VK_OEM_PLUS
	contracts.KeyComma:      0xBC, // VK_OEM_COMMA
	contracts.KeyMinus:      0xBD, // VK_OEM_MINUS
	contracts.KeyDot:        0xBE, // VK_OEM_PERIOD
	contracts.KeySlash:      0xBF, // VK_OEM_2
	contracts.KeyGrave:      0xC0, // VK_OEM_3
	contracts.KeyLeftBrace:  0xDB, // VK_OEM_4
	contracts.KeyBackslash:  0xDC, // VK_OEM_5
	contracts.KeyRightBrace: 0xDD, // VK_OEM_6
	contracts.KeyApostrophe: 0xDE, // VK_OEM_7
}

// extendedKeys require KEYEVENTF_EXTENDEDKEY to be recognized correctly.
var extendedKeys = map[contracts.Key]bool{
	contracts.KeyLeft:  true,
	contracts.KeyUp:    true,
	contracts.KeyRight: true,
	contracts.KeyDown:  true,
	contracts.KeySuper: true,
}

// Load the user32.dll library and required functions
var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

// Typist injects keystrokes on Windows through SendInput.
type Typist struct {
	logger contracts.Logger
}

// NewTypist creates a keystroke injector for Windows.
func NewTypist(options *contracts.TypistOptions) (contracts.Typist, error) {
	options.Logger.Info("Keystroke injector created for Windows")
	return &Typist{
		logger: options.Logger,
	}, nil
}

// Press sends a key-down event for the given key.
func (t *Typist) Press(key contracts.Key) error {
	return t.send(key, false)
}

// Release sends a key-up event for the given key.
func (t *Typist) Release(key contracts.Key) error {
	return t.send(key, true)
}

func (t *Typist) send(key contracts.Key, up bool) error {
	vk, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", contracts.ErrUnmappedKey, key)
	}

	var flags uint32
	if up {
		flags |= KEYEVENTF_KEYUP
	}
	if extendedKeys[key] {
		flags |= KEYEVENTF_EXTENDEDKEY
	}

	in := input{
		inputType: INPUT_KEYBOARD,
		ki: keybdInput{
			wVk:     vk,
			dwFlags: flags,
		},
	}

	sent, _, err := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&in)),
		unsafe.Sizeof(in),
	)
	if sent != 1 {
		t.logger.Error(fmt.Sprintf("SendInput failed for key %s: %v", key, err))
		return fmt.Errorf("SendInput failed for key %s: %v", key, err)
	}
	return nil
}

// Close releases nothing; SendInput holds no OS resources.
func (t *Typist) Close() error {
	return nil
}
