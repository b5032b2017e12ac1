package validation

import (
	"errors"
	"net/mail"
)

// ValidateEmail checks format and length. Parsing uses net/mail, which
// follows RFC 5322.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321 caps the full address at 254 characters
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email address format")
	}

	return nil
}
