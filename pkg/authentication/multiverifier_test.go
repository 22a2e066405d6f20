package authentication

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures generated with crypt(3) and "openssl passwd -apr1"
const (
	desBilliards    = "GgHKjSw.CAsOo"                         // "billiards", salt "Gg"
	desTestpassword = "tek4edTZE898g"                         // "testpassword123", salt "te"
	desSecret12     = "abhv/ZnAzL36k"                         // "secret12", salt "ab"
	apr1Correct     = "$apr1$abcd1234$4Ec0uzymvHL12pafYC9gb/" // "correct-password"
	apr1Hunter2     = "$apr1$Xz9.rT2q$qPuhPZoknUgqFj/AXOgGG/" // "hunter2"
	sha1Correct     = "{SHA}j0lniL/+iwUv7rLGS7+OOL2uxps="     // "correct-password"
	sha1Hello       = "{SHA}qvTGHdzF6KLavt4PO0gs2a6pQ00="     // "hello"
)

func argon2idHash(password string, salt []byte) string {
	hash := argon2.IDKey([]byte(password), salt, 1, 8*1024, 1, 32)
	return fmt.Sprintf("$argon2id$v=19$m=8192,t=1,p=1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt), base64.RawStdEncoding.EncodeToString(hash))
}

func TestDetectScheme(t *testing.T) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		hash string
		want Scheme
	}{
		{apr1Correct, SchemeAPR1},
		{sha1Hello, SchemeSHA1},
		{string(bcryptHash), SchemeBcrypt},
		{"$2y$05$abcdefghijklmnopqrstuuB7sK1QmP0xq8vYc7H8F0kq0CwF4Zy1y", SchemeBcrypt},
		{argon2idHash("pw", []byte("0123456789abcdef")), SchemeArgon2ID},
		{desBilliards, SchemeDES},
		{"", SchemeUnknown},
		{"plaintext", SchemeUnknown},
		{"GgHKjSw.CAsO", SchemeUnknown},   // 12 characters
		{"GgHKjSw.CAsOo1", SchemeUnknown}, // 14 characters
		{"GgHKjSw:CAsOo", SchemeUnknown},  // character outside the crypt alphabet
		{"$1$abcd$xyz", SchemeUnknown},
		{"{sha}qvTGHdzF6KLavt4PO0gs2a6pQ00=", SchemeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.hash, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectScheme(tt.hash))
		})
	}
}

func TestUnixCrypt(t *testing.T) {
	v := NewUnixCrypt()

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"exact 8 character password", "secret12", desSecret12, true},
		{"first 8 characters of a longer password", "billiard", desBilliards, true},
		{"full 9 character password is refused", "billiards", desBilliards, false},
		{"trailing characters are refused", "secret12extra", desSecret12, false},
		{"15 character password is refused", "testpassword123", desTestpassword, false},
		{"8 character prefix accepted", "testpass", desTestpassword, true},
		{"wrong password", "secret13", desSecret12, false},
		{"shorter password", "secret1", desSecret12, false},
		{"malformed hash", "secret12", "x", false},
		{"empty hash", "secret12", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Matches(tt.password, tt.hash))
		})
	}
}

func TestSHA1(t *testing.T) {
	v := NewSHA1()

	assert.True(t, v.Matches("correct-password", sha1Correct))
	assert.True(t, v.Matches("hello", sha1Hello))
	assert.False(t, v.Matches("Hello", sha1Hello))
	assert.False(t, v.Matches("hello ", sha1Hello))
	assert.False(t, v.Matches("hello", "{SHA}not-base64!"))
	assert.False(t, v.Matches("hello", "{SHA}aGVsbG8="), "digest of wrong length")
	assert.False(t, v.Matches("hello", "qvTGHdzF6KLavt4PO0gs2a6pQ00="), "missing prefix")
}

func TestAPR1(t *testing.T) {
	v := NewAPR1()

	assert.True(t, v.Matches("correct-password", apr1Correct))
	assert.True(t, v.Matches("hunter2", apr1Hunter2))
	assert.False(t, v.Matches("wrong-password", apr1Correct))
	assert.False(t, v.Matches("hunter2", apr1Correct), "salt is taken from the stored hash")
	assert.False(t, v.Matches("correct-password", "$apr1$"), "truncated hash")
	assert.False(t, v.Matches("correct-password", "$1$abcd1234$4Ec0uzymvHL12pafYC9gb/"), "plain md5-crypt prefix")
}

func TestBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcrypt()
	assert.True(t, v.Matches("s3cr3t", string(hash)))
	assert.False(t, v.Matches("s3cr3T", string(hash)))
	assert.False(t, v.Matches("s3cr3t", "$2y$garbage"))

	t.Run("passwords longer than 72 bytes are refused", func(t *testing.T) {
		long := strings.Repeat("a", 72)
		longHash, err := bcrypt.GenerateFromPassword([]byte(long), bcrypt.MinCost)
		require.NoError(t, err)

		assert.True(t, v.Matches(long, string(longHash)))
		assert.False(t, v.Matches(long+"trailing-junk", string(longHash)))
		assert.False(t, v.Matches(long+"a", string(longHash)))
	})
}

func TestArgon2ID(t *testing.T) {
	v := NewArgon2ID()
	salt := []byte("0123456789abcdef")
	hash := argon2idHash("p@ssw0rd", salt)

	t.Run("valid password", func(t *testing.T) {
		assert.True(t, v.Matches("p@ssw0rd", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.False(t, v.Matches("p@ssw0rD", hash))
	})

	t.Run("version segment optional", func(t *testing.T) {
		noVersion := "$argon2id$" + hash[len("$argon2id$v=19$"):]
		assert.True(t, v.Matches("p@ssw0rd", noVersion))
	})

	t.Run("invalid formats", func(t *testing.T) {
		saltB64 := base64.RawStdEncoding.EncodeToString(salt)
		invalid := []string{
			"",
			"$argon2id$v=19$m=65536",
			"$argon2id$v=18$m=8192,t=1,p=1$" + saltB64 + "$aGFzaA",
			"$argon2id$v=19$m=invalid,t=1,p=1$" + saltB64 + "$aGFzaA",
			"$argon2id$v=19$m=8192,t=1,p=1$**bad**$aGFzaA",
			"$argon2id$v=19$m=8192,t=1,p=1$" + saltB64,
			"$argon2id$v=19$m=8192,t=1,p=1$" + saltB64 + "$",
			"$argon2id$v=19$m=8192,t=1,p=1$" + saltB64 + "$aGFzaA$extra",
		}
		for _, h := range invalid {
			assert.False(t, v.Matches("p@ssw0rd", h), "hash: %s", h)
		}
	})
}

func TestMultiHashVerifier(t *testing.T) {
	mv := NewMultiHashVerifier()

	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("b-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	argonHash := argon2idHash("a-secret", []byte("fedcba9876543210"))
	long := strings.Repeat("b", 72)
	longBcryptHash, err := bcrypt.GenerateFromPassword([]byte(long), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"des ok", "secret12", desSecret12, true},
		{"des over-length refused", "billiards", desBilliards, false},
		{"sha1 ok", "correct-password", sha1Correct, true},
		{"sha1 wrong password", "correct-passwore", sha1Correct, false},
		{"apr1 ok", "correct-password", apr1Correct, true},
		{"apr1 wrong password", "wrong-password", apr1Correct, false},
		{"bcrypt ok", "b-secret", string(bcryptHash), true},
		{"bcrypt wrong password", "b-secreT", string(bcryptHash), false},
		{"bcrypt 72 bytes ok", long, string(longBcryptHash), true},
		{"bcrypt over-length refused", long + "junk", string(longBcryptHash), false},
		{"argon2id ok", "a-secret", argonHash, true},
		{"argon2id wrong password", "a-secreT", argonHash, false},
		{"unknown format never matches", "plaintext", "plaintext", false},
		{"empty hash never matches", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mv.Matches(tt.password, tt.hash))
		})
	}
}

func TestVerifiersRejectSingleCharacterChanges(t *testing.T) {
	mv := NewMultiHashVerifier()
	password := "correct-password"

	for _, hash := range []string{apr1Correct, sha1Correct} {
		require.True(t, mv.Matches(password, hash))
		for i := 0; i < len(password); i++ {
			changed := []byte(password)
			changed[i] ^= 0x01
			assert.False(t, mv.Matches(string(changed), hash), "hash %s, changed position %d", hash, i)
		}
	}
}
