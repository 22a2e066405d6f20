package authentication

import (
	"context"
	"errors"
)

// Credential is a username/password pair presented for verification.
// It lives only for the duration of a single Authenticate call.
type Credential struct {
	Username string `validate:"required,excludes=:"`
	Password string `validate:"required"`
}

// Identity is returned on successful authentication
type Identity struct {
	Username string
	// Attributes is always non-nil and currently empty
	Attributes map[string]any
}

// Source locates the stored password hash for a username
type Source interface {
	// LookupHash returns the stored hash for username, ErrUsernameNotFound when no
	// entry exists, or an error wrapping ErrStorageUnavailable.
	LookupHash(ctx context.Context, username string) (string, error)
}

// PasswordVerifier is an interface for password verification algorithms
type PasswordVerifier interface {
	// Matches reports whether password produces hashedPassword
	Matches(password, hashedPassword string) bool
}

var (
	// ErrMalformedCredential is wrapped by every credential shape error
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrUsernameMissing is returned when the credential has no username
	ErrUsernameMissing = errors.New("username missing")

	// ErrPasswordMissing is returned when the credential has no password
	ErrPasswordMissing = errors.New("password missing")

	// ErrUsernameInvalid is returned when the username can never appear in an htpasswd file
	ErrUsernameInvalid = errors.New("username invalid")

	// ErrStorageUnavailable is returned when the credentials file cannot be resolved, opened or read
	ErrStorageUnavailable = errors.New("credentials storage unavailable")

	// ErrUsernameNotFound is returned when no entry exists for the username
	ErrUsernameNotFound = errors.New("username not found")

	// ErrPasswordIncorrect is returned when the password does not match the stored hash
	ErrPasswordIncorrect = errors.New("password incorrect")

	// ErrAuthenticationFailed is the user-facing form of ErrUsernameNotFound and ErrPasswordIncorrect
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// FailureKind classifies the outcome of an authentication attempt
type FailureKind string

const (
	KindNone                FailureKind = "none"
	KindMalformedCredential FailureKind = "malformed_credential"
	KindStorageUnavailable  FailureKind = "storage_unavailable"
	KindUsernameNotFound    FailureKind = "username_not_found"
	KindPasswordIncorrect   FailureKind = "password_incorrect"
	KindUnknown             FailureKind = "unknown"
)

// KindOf maps an error returned by Authenticate to its FailureKind.
// A nil error is KindNone.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMalformedCredential):
		return KindMalformedCredential
	case errors.Is(err, ErrStorageUnavailable):
		return KindStorageUnavailable
	case errors.Is(err, ErrUsernameNotFound):
		return KindUsernameNotFound
	case errors.Is(err, ErrPasswordIncorrect):
		return KindPasswordIncorrect
	default:
		return KindUnknown
	}
}

// PublicError collapses username-not-found and password-incorrect into
// ErrAuthenticationFailed so callers exposing results to end users do not
// leak which usernames exist. Other errors are returned unchanged.
func PublicError(err error) error {
	switch KindOf(err) {
	case KindUsernameNotFound, KindPasswordIncorrect:
		return ErrAuthenticationFailed
	default:
		return err
	}
}
