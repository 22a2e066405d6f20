package authentication

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2IDPrefix marks a PHC-formatted argon2id hash
const Argon2IDPrefix = "$argon2id$"

// Argon2ID verifies Argon2id PHC-formatted password hashes.
// Example format: $argon2id$v=19$m=65536,t=2,p=1$<salt_b64>$<hash_b64>
type Argon2ID struct{}

// NewArgon2ID returns an Argon2ID verifier.
func NewArgon2ID() *Argon2ID { return &Argon2ID{} }

// Matches implements PasswordVerifier
func (a *Argon2ID) Matches(password, hashedPassword string) bool {
	params, salt, expected, err := parsePHCArgon2ID(hashedPassword)
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

// parsePHCArgon2ID splits a PHC string into its cost parameters, salt and digest.
// The version segment is optional; missing cost parameters keep their defaults.
func parsePHCArgon2ID(s string) (argon2Params, []byte, []byte, error) {
	params := argon2Params{memory: 64 * 1024, time: 2, threads: 1}

	if !strings.HasPrefix(s, Argon2IDPrefix) {
		return params, nil, nil, fmt.Errorf("unsupported or invalid argon2id format")
	}
	parts := strings.Split(strings.TrimPrefix(s, Argon2IDPrefix), "$")
	if len(parts) > 0 && strings.HasPrefix(parts[0], "v=") {
		if v, err := strconv.Atoi(strings.TrimPrefix(parts[0], "v=")); err != nil || v != argon2.Version {
			return params, nil, nil, fmt.Errorf("unsupported argon2id version %q", parts[0])
		}
		parts = parts[1:]
	}
	// Remaining: ["m=..,t=..,p=..", "saltb64", "hashb64"]
	if len(parts) != 3 {
		return params, nil, nil, fmt.Errorf("unsupported or invalid argon2id format")
	}

	for _, kv := range strings.Split(parts[0], ",") {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return params, nil, nil, fmt.Errorf("invalid argon2id parameter %q", kv)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return params, nil, nil, fmt.Errorf("invalid argon2id parameter %q", kv)
		}
		switch key {
		case "m":
			params.memory = uint32(n)
		case "t":
			params.time = uint32(n)
		case "p":
			if n > 255 {
				return params, nil, nil, fmt.Errorf("invalid argon2id parallelism %d", n)
			}
			params.threads = uint8(n)
		}
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return params, nil, nil, fmt.Errorf("invalid argon2id salt: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return params, nil, nil, fmt.Errorf("invalid argon2id hash: %w", err)
	}
	if len(hash) == 0 {
		return params, nil, nil, fmt.Errorf("invalid argon2id hash: empty")
	}
	return params, salt, hash, nil
}
