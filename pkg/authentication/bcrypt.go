package authentication

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxPasswordLen is the number of password bytes bcrypt reads.
const bcryptMaxPasswordLen = 72

// Bcrypt verifies bcrypt hashes as written by "htpasswd -B".
// Like UnixCrypt, it refuses passwords longer than the algorithm reads.
type Bcrypt struct{}

// NewBcrypt returns a Bcrypt verifier
func NewBcrypt() *Bcrypt { return &Bcrypt{} }

// Matches implements PasswordVerifier
func (v *Bcrypt) Matches(password, hashedPassword string) bool {
	if len(password) > bcryptMaxPasswordLen {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
