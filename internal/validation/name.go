package validation

import (
	"errors"
	"strings"
)

const nameMaxLen = 100

// ValidateName checks a display name (users, households, lists, tasks).
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("name is required")
	}
	if len(trimmed) > nameMaxLen {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}
