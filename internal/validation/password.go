package validation

import (
	"errors"
	"strings"
)

const specialChars = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"

// HasSpecialChar reports whether the string contains at least one
// punctuation character.
func HasSpecialChar(s string) bool {
	return strings.ContainsAny(s, specialChars)
}

// Password enforces the account password policy.
func Password(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !HasSpecialChar(password) {
		return errors.New("password must contain a special character")
	}
	return nil
}
