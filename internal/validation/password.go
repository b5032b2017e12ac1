package validation

import (
	"errors"
	"strings"
)

// Substrings that show up in virtually every breached-password list.
var weakPasswordSubstrings = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidatePassword enforces a 12-character minimum and rejects common
// patterns. The 72-byte ceiling exists because bcrypt silently truncates
// anything longer.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return errors.New("password must be at least 12 characters")
	}
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	for _, pattern := range weakPasswordSubstrings {
		if strings.Contains(lower, pattern) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}
