package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordIterations = 120000
	passwordKeyLength  = 64
	saltLength         = 16
)

// HashPassword derives a PBKDF2-HMAC-SHA512 hash with a fresh random salt and
// returns it as "salt:hash" in hex. The hex salt text itself is the KDF salt,
// which keeps hashes written by earlier deployments verifiable.
func HashPassword(password string) (string, error) {
	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	salt := hex.EncodeToString(buf)
	return salt + ":" + hex.EncodeToString(derive(password, salt)), nil
}

// VerifyPassword reports whether password matches the stored "salt:hash".
// Malformed stored values never match.
func VerifyPassword(password, stored string) bool {
	salt, hash, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || hash == "" {
		return false
	}
	expected, err := hex.DecodeString(hash)
	if err != nil || len(expected) != passwordKeyLength {
		return false
	}
	return subtle.ConstantTimeCompare(expected, derive(password, salt)) == 1
}

func derive(password, salt string) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), passwordIterations, passwordKeyLength, sha512.New)
}
