package validation

import (
	"errors"
	"strings"
)

// ValidateInviteCode checks a user-entered household invite code before it is
// normalized and looked up. Codes are alphanumeric and bounded in length.
func ValidateInviteCode(code string, maxLen int) error {
	trimmed := strings.TrimSpace(code)

	if trimmed == "" {
		return errors.New("invite code is required")
	}

	if len(trimmed) > maxLen {
		return errors.New("invite code is too long")
	}

	for _, r := range trimmed {
		isDigit := r >= '0' && r <= '9'
		isUpper := r >= 'A' && r <= 'Z'
		isLower := r >= 'a' && r <= 'z'
		if !isDigit && !isUpper && !isLower {
			return errors.New("invite code contains invalid characters")
		}
	}

	return nil
}
