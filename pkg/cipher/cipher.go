// Package cipher provides the reversible credential cipher used to store
// user passwords.
//
// Storing a reversible cipher instead of a one-way hash is inherited
// behavior: login echoes the decrypted password back to the client. The
// same goes for the deterministic encryption (fixed key, fixed nonce),
// which the round-trip contract requires. Neither is suitable for hardened
// credential storage; swap in a randomized AEAD or one-way hashing through
// the Cipher interface for that.
package cipher

import (
	"errors"
	"fmt"
)

var (
	// ErrEncrypt wraps failures of the underlying cipher primitive.
	ErrEncrypt = errors.New("encryption failed")
	// ErrDecrypt is returned for malformed or forged ciphertext.
	ErrDecrypt = errors.New("decryption failed")
)

// Cipher reversibly encrypts the stored password secret. Encrypt must be
// deterministic: the same plaintext always yields the same ciphertext
// under the process-wide key. Both directions must accept the empty
// string.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

func encryptErr(err error) error {
	return fmt.Errorf("%w: %v", ErrEncrypt, err)
}

func decryptErr(err error) error {
	return fmt.Errorf("%w: %v", ErrDecrypt, err)
}
