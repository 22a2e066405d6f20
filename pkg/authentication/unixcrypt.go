package authentication

import (
	"crypto/subtle"

	"github.com/digitive/crypt"
)

// desMaxPasswordLen is the number of password bytes traditional crypt(3) reads.
const desMaxPasswordLen = 8

// UnixCrypt verifies traditional DES-based crypt(3) hashes.
//
// DES crypt only looks at the first 8 characters of a password, so
// "atechars" and "atecharsnine" hash identically. Passwords longer than
// 8 bytes are therefore never accepted by this verifier, even if their
// first 8 bytes are correct.
type UnixCrypt struct{}

// NewUnixCrypt creates a new Unix crypt verifier
func NewUnixCrypt() *UnixCrypt {
	return &UnixCrypt{}
}

// Matches implements PasswordVerifier
func (h *UnixCrypt) Matches(password, hashedPassword string) bool {
	if len(password) > desMaxPasswordLen {
		return false
	}
	// Salt is the first 2 characters of the hash
	if len(hashedPassword) < 2 {
		return false
	}

	computed, err := crypt.Crypt(password, hashedPassword[:2])
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashedPassword)) == 1
}
