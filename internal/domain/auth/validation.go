package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minSecretLength = 6

var (
	emailRegex = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// ValidateCredentials checks the shape of a sign-in attempt before it reaches the
// provider: the identifier must be an email address or phone number and the secret
// must be at least six characters long.
func ValidateCredentials(identifier, secret string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return NewError(KindInvalidInput, "email or phone number is required", nil)
	}
	if !emailRegex.MatchString(identifier) && !phoneRegex.MatchString(identifier) {
		return NewError(KindInvalidInput, "invalid email or phone number", nil)
	}
	if secret == "" {
		return NewError(KindInvalidInput, "password is required", nil)
	}
	if utf8.RuneCountInString(secret) < minSecretLength {
		return NewError(KindInvalidInput, "password must be at least 6 characters", nil)
	}
	return nil
}
