package crypto

import (
	"crypto/rand"
	"encoding/hex"
)

const sessionTokenBytes = 32

// NewSessionToken returns 256 random bits rendered as hex.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IsSessionToken reports whether s has the shape of a token issued by
// NewSessionToken.
func IsSessionToken(s string) bool {
	if len(s) != sessionTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
