package account

import (
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	specialChars   = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// ValidateUsername checks the username length rule.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(username) < minUsernameLen {
		return ErrUsernameTooShort
	}
	return nil
}

// ValidatePassword checks the password length and special character rules.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if !strings.ContainsAny(password, specialChars) {
		return ErrPasswordMissingSpecialChar
	}
	return nil
}
