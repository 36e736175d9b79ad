package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken returns the SHA-512 hex digest of a raw token. Tokens are
// high-entropy signed values, so the digest is unsalted and deterministic.
func HashToken(raw string) string {
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// TokenMatches reports whether raw hashes to hashed, in constant time.
func TokenMatches(raw, hashed string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(raw)), []byte(hashed)) == 1
}
