package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// EmptyPasswordHash is the SHA-256 of the empty string. Older deployments
// used it as the "no password configured" marker; it is still accepted as a
// configured hash but reported by SharedSecret.WeakHash.
const EmptyPasswordHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// DefaultInsecurePassword is accepted by Login only in insecure-default mode.
const DefaultInsecurePassword = "admin123"

// MinPasswordLength applies to new admin passwords.
const MinPasswordLength = 6

// HashPassword returns the hex SHA-256 digest used as the admin token.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password hashes to hashed.
func VerifyPassword(password, hashed string) bool {
	return tokensEqual(HashPassword(password), hashed)
}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
