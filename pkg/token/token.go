// Package token generates and compares 64-character hex security tokens.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Length is the encoded length of every token: 32 random bytes as hex.
const Length = 64

// Generate returns a new random token.
func Generate() (string, error) {
	buf := make([]byte, Length/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token.Generate: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Equal reports whether a and b are the same token. Inputs that are not
// exactly Length characters are rejected up front; the content comparison
// touches every byte regardless of where the first difference is.
func Equal(a, b string) bool {
	if len(a) != Length || len(b) != Length {
		return false
	}

	var acc byte
	for i := 0; i < Length; i++ {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}
