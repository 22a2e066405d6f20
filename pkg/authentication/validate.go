package authentication

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var credentialValidator = validator.New(validator.WithRequiredStructEnabled())

// checkCredential performs the minimal shape check on a credential before any
// storage is touched. Errors wrap ErrMalformedCredential.
func checkCredential(cred Credential) error {
	err := credentialValidator.Struct(cred)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	// Report the first failing field; username problems are reported before password ones
	fe := verrs[0]
	switch {
	case fe.Field() == "Username" && fe.Tag() == "required":
		return fmt.Errorf("%w: %w", ErrMalformedCredential, ErrUsernameMissing)
	case fe.Field() == "Username":
		return fmt.Errorf("%w: %w", ErrMalformedCredential, ErrUsernameInvalid)
	case fe.Field() == "Password":
		return fmt.Errorf("%w: %w", ErrMalformedCredential, ErrPasswordMissing)
	default:
		return fmt.Errorf("%w: field %s failed %s", ErrMalformedCredential, fe.Field(), fe.Tag())
	}
}
