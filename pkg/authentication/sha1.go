package authentication

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// SHA1Prefix marks an htpasswd SHA1 entry: "{SHA}" followed by the
// base64-encoded, unsalted SHA1 digest of the password.
const SHA1Prefix = "{SHA}"

// SHA1 verifies htpasswd "{SHA}" hashes
type SHA1 struct{}

// NewSHA1 returns a SHA1 verifier
func NewSHA1() *SHA1 { return &SHA1{} }

// Matches implements PasswordVerifier
func (v *SHA1) Matches(password, hashedPassword string) bool {
	encoded, ok := strings.CutPrefix(hashedPassword, SHA1Prefix)
	if !ok {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(expected) != sha1.Size {
		return false
	}

	sum := sha1.Sum([]byte(password))
	return subtle.ConstantTimeCompare(sum[:], expected) == 1
}
