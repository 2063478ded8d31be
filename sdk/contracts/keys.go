package contracts

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknownKey is returned by ParseKey for tokens outside the vocabulary.
var ErrUnknownKey = errors.New("unknown key token")

// Key identifies one logical keyboard key, independent of any platform scan
// code. The vocabulary is closed: mapping files are validated against it at
// load time, and each typist backend owns a Key -> platform-code table.
type Key int

const (
	KeyNone Key = iota

	// Modifiers. Held and released like any other key; the engine's
	// reference counting keeps them down while any mapped note sounds.
	KeyShift
	KeyCtrl
	KeyAlt
	KeySuper

	// Whitespace and control keys.
	KeySpace
	KeyTab
	KeyBackspace
	KeyEnter
	KeyEscape

	// Arrows.
	KeyLeft
	KeyUp
	KeyRight
	KeyDown

	// Letters a-z.
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits 0-9.
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Punctuation on the unshifted US layout.
	KeyMinus
	KeyEqual
	KeyLeftBrace
	KeyRightBrace
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeyComma
	KeyDot
	KeySlash
	KeyGrave
)

// Two-letter tokens used by the fretboard mapping files.
var tokenKeys = map[string]Key{
	"SH": KeyShift,
	"CT": KeyCtrl,
	"AL": KeyAlt,
	"CM": KeySuper,
	"SP": KeySpace,
	"TA": KeyTab,
	"BA": KeyBackspace,
	"EN": KeyEnter,
	"ES": KeyEscape,
	"LE": KeyLeft,
	"UP": KeyUp,
	"RI": KeyRight,
	"DO": KeyDown,
}

var punctKeys = map[rune]Key{
	'-':  KeyMinus,
	'=':  KeyEqual,
	'[':  KeyLeftBrace,
	']':  KeyRightBrace,
	'\\': KeyBackslash,
	';':  KeySemicolon,
	'\'': KeyApostrophe,
	',':  KeyComma,
	'.':  KeyDot,
	'/':  KeySlash,
	'`':  KeyGrave,
}

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyShift:     "shift",
	KeyCtrl:      "ctrl",
	KeyAlt:       "alt",
	KeySuper:     "super",
	KeySpace:     "space",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyLeft:      "left",
	KeyUp:        "up",
	KeyRight:     "right",
	KeyDown:      "down",
}

var punctNames = func() map[Key]string {
	m := make(map[Key]string, len(punctKeys))
	for r, k := range punctKeys {
		m[k] = string(r)
	}
	return m
}()

// ParseKey resolves one mapping-file token to a Key. Two-character tokens are
// the named codes above (case-insensitive); a single character names a letter
// (case-folded), digit, or punctuation key. Anything else, including the
// empty string, is ErrUnknownKey; empty cells mean "no mapping" and are the
// caller's business, not a key.
func ParseKey(token string) (Key, error) {
	t := strings.TrimSpace(token)
	if len(t) == 2 {
		if k, ok := tokenKeys[strings.ToUpper(t)]; ok {
			return k, nil
		}
		return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, token)
	}
	r := []rune(t)
	if len(r) == 1 {
		c := unicode.ToLower(r[0])
		switch {
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a'), nil
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0'), nil
		}
		if k, ok := punctKeys[c]; ok {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// String renders the key for logs and the mapping grid.
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + k - KeyA))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	}
	if n, ok := keyNames[k]; ok {
		return n
	}
	if n, ok := punctNames[k]; ok {
		return n
	}
	return fmt.Sprintf("key(%d)", int(k))
}
