package cipher

import (
	"crypto/aes"
	ccipher "crypto/cipher"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/scrypt"
)

// Fixed salt so every process derives the same key from the passphrase.
const keySalt = "auth-service/cipher/v1"

// AESCipher is an AES-256-GCM Cipher with a fixed, key-derived nonce.
// The fixed nonce keeps Encrypt deterministic; GCM's authentication tag
// makes Decrypt fail on tampered or foreign ciphertext.
type AESCipher struct {
	aead  ccipher.AEAD
	nonce []byte
}

// NewAES derives a 256-bit key from the passphrase via scrypt and returns
// a ready cipher.
func NewAES(passphrase string) (*AESCipher, error) {
	key, err := scrypt.Key([]byte(passphrase), []byte(keySalt), 1<<15, 8, 1, 32)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := ccipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSeed := sha256.Sum256(append(key, []byte("/nonce")...))
	return &AESCipher{aead: aead, nonce: nonceSeed[:aead.NonceSize()]}, nil
}

// Encrypt returns the base64-encoded ciphertext of plaintext. The empty
// string is a valid input.
func (c *AESCipher) Encrypt(plaintext string) (string, error) {
	sealed := c.aead.Seal(nil, c.nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt is the inverse of Encrypt. It fails with ErrDecrypt when the
// input is not base64 or does not authenticate under the process key.
func (c *AESCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", decryptErr(err)
	}
	plain, err := c.aead.Open(nil, c.nonce, raw, nil)
	if err != nil {
		return "", decryptErr(err)
	}
	return string(plain), nil
}

var _ Cipher = (*AESCipher)(nil)
