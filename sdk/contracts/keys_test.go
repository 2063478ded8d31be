package contracts_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fretkey/fretkey/sdk/contracts"
)

func TestParseKey(t *testing.T) {
	t.Run("named two-letter tokens", func(t *testing.T) {
		want := map[string]contracts.Key{
			"SH": contracts.KeyShift,
			"CT": contracts.KeyCtrl,
			"AL": contracts.KeyAlt,
			"CM": contracts.KeySuper,
			"SP": contracts.KeySpace,
			"TA": contracts.KeyTab,
			"BA": contracts.KeyBackspace,
			"EN": contracts.KeyEnter,
			"ES": contracts.KeyEscape,
			"LE": contracts.KeyLeft,
			"UP": contracts.KeyUp,
			"RI": contracts.KeyRight,
			"DO": contracts.KeyDown,
		}
		for token, wantKey := range want {
			key, err := contracts.ParseKey(token)
			require.NoError(t, err, "token %s", token)
			require.Equal(t, wantKey, key, "token %s", token)
		}
	})

	t.Run("tokens are case-insensitive", func(t *testing.T) {
		key, err := contracts.ParseKey("sh")
		require.NoError(t, err)
		require.Equal(t, contracts.KeyShift, key)

		key, err = contracts.ParseKey("A")
		require.NoError(t, err)
		require.Equal(t, contracts.KeyA, key)
	})

	t.Run("single characters", func(t *testing.T) {
		key, err := contracts.ParseKey("g")
		require.NoError(t, err)
		require.Equal(t, contracts.KeyG, key)

		key, err = contracts.ParseKey("5")
		require.NoError(t, err)
		require.Equal(t, contracts.Key5, key)

		key, err = contracts.ParseKey(";")
		require.NoError(t, err)
		require.Equal(t, contracts.KeySemicolon, key)
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		key, err := contracts.ParseKey(" EN ")
		require.NoError(t, err)
		require.Equal(t, contracts.KeyEnter, key)
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, token := range []string{"", "XX", "abc", "?", "§"} {
			_, err := contracts.ParseKey(token)
			require.ErrorIs(t, err, contracts.ErrUnknownKey, "token %q", token)
		}
	})
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "shift", contracts.KeyShift.String())
	require.Equal(t, "a", contracts.KeyA.String())
	require.Equal(t, "z", contracts.KeyZ.String())
	require.Equal(t, "0", contracts.Key0.String())
	require.Equal(t, ",", contracts.KeyComma.String())
	require.Equal(t, "space", contracts.KeySpace.String())
}
