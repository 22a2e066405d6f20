package authentication

import (
	"strings"
)

// Scheme identifies the hashing scheme of a stored htpasswd value
type Scheme string

const (
	SchemeUnknown  Scheme = "unknown"
	SchemeDES      Scheme = "des"
	SchemeSHA1     Scheme = "sha1"
	SchemeAPR1     Scheme = "apr1"
	SchemeBcrypt   Scheme = "bcrypt"
	SchemeArgon2ID Scheme = "argon2id"
)

// desHashLen is the length of a traditional crypt(3) value: 2 salt + 11 digest characters
const desHashLen = 13

// DetectScheme infers the hashing scheme from the structure of a stored hash
func DetectScheme(hashedPassword string) Scheme {
	switch {
	case strings.HasPrefix(hashedPassword, APR1Prefix):
		return SchemeAPR1
	case strings.HasPrefix(hashedPassword, SHA1Prefix):
		return SchemeSHA1
	case strings.HasPrefix(hashedPassword, "$2a$"),
		strings.HasPrefix(hashedPassword, "$2b$"),
		strings.HasPrefix(hashedPassword, "$2y$"):
		return SchemeBcrypt
	case strings.HasPrefix(hashedPassword, Argon2IDPrefix):
		return SchemeArgon2ID
	case isDESHash(hashedPassword):
		return SchemeDES
	default:
		return SchemeUnknown
	}
}

// isDESHash reports whether s is 13 characters from the crypt(3) alphabet [./0-9A-Za-z]
func isDESHash(s string) bool {
	if len(s) != desHashLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.' || c == '/':
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		default:
			return false
		}
	}
	return true
}

// MultiHashVerifier automatically detects hash type and delegates to appropriate verifier
type MultiHashVerifier struct {
	verifiers map[Scheme]PasswordVerifier
}

// NewMultiHashVerifier creates a verifier supporting DES crypt, {SHA}, apr1, bcrypt and argon2id
func NewMultiHashVerifier() *MultiHashVerifier {
	return &MultiHashVerifier{
		verifiers: map[Scheme]PasswordVerifier{
			SchemeDES:      NewUnixCrypt(),
			SchemeSHA1:     NewSHA1(),
			SchemeAPR1:     NewAPR1(),
			SchemeBcrypt:   NewBcrypt(),
			SchemeArgon2ID: NewArgon2ID(),
		},
	}
}

// Matches implements PasswordVerifier. Hashes in an unrecognised format never match.
func (v *MultiHashVerifier) Matches(password, hashedPassword string) bool {
	verifier, ok := v.verifiers[DetectScheme(hashedPassword)]
	if !ok {
		return false
	}
	return verifier.Matches(password, hashedPassword)
}
