package authentication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmcdole/htauth/pkg/logging"
)

// Authenticator verifies credentials against a Source of stored hashes.
// It keeps no state between calls: every attempt reads the source again.
type Authenticator struct {
	source   Source
	verifier PasswordVerifier
	metrics  *Metrics
}

// NewAuthenticator creates a new authenticator.
// A nil verifier defaults to NewMultiHashVerifier; nil metrics disables metrics.
func NewAuthenticator(source Source, verifier PasswordVerifier, metrics *Metrics) (*Authenticator, error) {
	if source == nil {
		return nil, fmt.Errorf("credential source is required")
	}
	if verifier == nil {
		verifier = NewMultiHashVerifier()
	}

	return &Authenticator{
		source:   source,
		verifier: verifier,
		metrics:  metrics,
	}, nil
}

// Authenticate checks the credential and returns the authenticated identity.
//
// Errors wrap one of ErrMalformedCredential, ErrStorageUnavailable,
// ErrUsernameNotFound or ErrPasswordIncorrect. The last two are distinct;
// use PublicError before showing the result to an end user.
func (a *Authenticator) Authenticate(ctx context.Context, cred Credential) (*Identity, error) {
	start := time.Now()

	identity, err := a.authenticate(ctx, cred)

	kind := KindOf(err)
	a.metrics.RecordResult(kind, time.Since(start))
	if err != nil {
		logging.Auth.LogAuth("LOGIN", cred.Username, "failure", "reason", kind)
		if kind == KindStorageUnavailable {
			logging.App.Error("Credentials storage unavailable", "user", cred.Username, "error", err)
		}
		return nil, err
	}

	logging.Auth.LogAuth("LOGIN", cred.Username, "success")
	return identity, nil
}

func (a *Authenticator) authenticate(ctx context.Context, cred Credential) (*Identity, error) {
	if err := checkCredential(cred); err != nil {
		return nil, err
	}

	hash, err := a.lookupHash(ctx, cred.Username)
	if err != nil {
		return nil, err
	}

	scheme := DetectScheme(hash)
	a.metrics.RecordScheme(scheme)
	if !a.verifier.Matches(cred.Password, hash) {
		logging.App.Debug("Password mismatch", "user", cred.Username, "scheme", scheme)
		return nil, ErrPasswordIncorrect
	}

	return &Identity{
		Username:   cred.Username,
		Attributes: map[string]any{},
	}, nil
}

// lookupHash asks the source for the stored hash, classifying any error that is
// neither a missing user nor already a storage failure as a storage failure.
func (a *Authenticator) lookupHash(ctx context.Context, username string) (string, error) {
	hash, err := a.source.LookupHash(ctx, username)
	switch {
	case err == nil:
		return hash, nil
	case errors.Is(err, ErrUsernameNotFound), errors.Is(err, ErrStorageUnavailable):
		return "", err
	default:
		return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
}

// UserExists checks if a user exists and returns any error encountered
func (a *Authenticator) UserExists(ctx context.Context, username string) (bool, error) {
	_, err := a.lookupHash(ctx, username)
	if errors.Is(err, ErrUsernameNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
