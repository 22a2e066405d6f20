package authentication

import (
	"strings"

	"github.com/GehirnInc/crypt/apr1_crypt"
)

// APR1Prefix marks Apache's salted, iterated MD5 format: $apr1$<salt>$<digest>
const APR1Prefix = apr1_crypt.MagicPrefix

// APR1 verifies Apache apr1-MD5 hashes. The salt is taken from the stored value.
type APR1 struct{}

// NewAPR1 returns an APR1 verifier
func NewAPR1() *APR1 { return &APR1{} }

// Matches implements PasswordVerifier.
// A malformed hash is reported as a mismatch.
func (v *APR1) Matches(password, hashedPassword string) bool {
	if !strings.HasPrefix(hashedPassword, APR1Prefix) {
		return false
	}
	return apr1_crypt.New().Verify(hashedPassword, []byte(password)) == nil
}
