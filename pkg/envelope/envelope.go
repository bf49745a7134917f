// Package envelope implements the demo AES-GCM cipher envelope used to
// simulate end-to-end encryption. The passphrase and salt are hardcoded
// placeholders, NOT real key management; anything sealed here is readable
// by anyone with the source.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passphrase = "xlai-demo-passphrase-v1"
	salt       = "xlai-demo-salt-v1"
	iterations = 100000
	keyLength  = 32
	ivLength   = 12

	// FailureMarker is returned in place of plaintext when an envelope
	// cannot be opened, so a corrupted row renders as a visible marker
	// instead of breaking the conversation view.
	FailureMarker = "[decryption failed]"
)

var (
	keyOnce   sync.Once
	cachedKey []byte
)

func demoKey() []byte {
	keyOnce.Do(func() {
		cachedKey = pbkdf2.Key([]byte(passphrase), []byte(salt), iterations, keyLength, sha256.New)
	})
	return cachedKey
}

// Seal encrypts plaintext and returns base64(iv || ciphertext).
func Seal(plaintext string) (string, error) {
	block, err := aes.NewCipher(demoKey())
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(iv, sealed...)), nil
}

// Open decrypts an envelope produced by Seal. Any failure (bad base64,
// truncated blob, auth failure) yields the failure marker rather than an
// error so display paths never have to branch.
func Open(envelope string) string {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil || len(raw) <= ivLength {
		return FailureMarker
	}

	block, err := aes.NewCipher(demoKey())
	if err != nil {
		return FailureMarker
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return FailureMarker
	}

	plaintext, err := gcm.Open(nil, raw[:ivLength], raw[ivLength:], nil)
	if err != nil {
		return FailureMarker
	}

	return string(plaintext)
}
