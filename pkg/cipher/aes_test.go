package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *AESCipher {
	t.Helper()
	c, err := NewAES("test-passphrase")
	require.NoError(t, err)
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newTestCipher(t)
	cases := []string{
		"password1",
		"Password123",
		"test@example.com",
		"短いテキスト",
		"123456789",
		"MixedCase123!@#",
		"!@#$%^&*()_+{}[]|:;\"'<>,.?/~`",
		"Hola España niños café",
		"This is a very long string that contains multiple words and should survive the round trip",
	}
	for _, plain := range cases {
		enc, err := c.Encrypt(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, enc)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, plain, dec)
	}
}

func TestEncryptDeterministic(t *testing.T) {
	c := newTestCipher(t)
	a, err := c.Encrypt("consistentTest")
	require.NoError(t, err)
	b, err := c.Encrypt("consistentTest")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEmptyString(t *testing.T) {
	c := newTestCipher(t)
	enc, err := c.Encrypt("")
	require.NoError(t, err)
	assert.NotEmpty(t, enc)

	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "", dec)
}

func TestDecryptInvalidBase64(t *testing.T) {
	c := newTestCipher(t)
	_, err := c.Decrypt("invalid-base64-string!@#")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptForeignCiphertext(t *testing.T) {
	c := newTestCipher(t)
	other, err := NewAES("another-passphrase")
	require.NoError(t, err)

	enc, err := other.Encrypt("Password12")
	require.NoError(t, err)

	_, err = c.Decrypt(enc)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptEmptyInput(t *testing.T) {
	c := newTestCipher(t)
	_, err := c.Decrypt("")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDifferentPassphrasesDiffer(t *testing.T) {
	a := newTestCipher(t)
	b, err := NewAES("second-passphrase")
	require.NoError(t, err)

	ea, err := a.Encrypt("Password12")
	require.NoError(t, err)
	eb, err := b.Encrypt("Password12")
	require.NoError(t, err)
	assert.NotEqual(t, ea, eb)
}
