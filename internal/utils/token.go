package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewToken returns n cryptographically secure random bytes, hex encoded
// (2n characters). Used for single-use appointment confirmation tokens.
func NewToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
