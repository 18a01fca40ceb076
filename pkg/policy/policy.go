// Package policy holds the syntactic rules an email and password must
// satisfy before an account is accepted.
package policy

import (
	"errors"
	"regexp"
)

var (
	// ErrEmailRequired is returned for an empty email.
	ErrEmailRequired = errors.New("email is required")
	// ErrInvalidEmail is returned when the email does not match the
	// required format.
	ErrInvalidEmail = errors.New("email format is invalid")
	// ErrInvalidPassword is returned when the password breaks the
	// composition rule.
	ErrInvalidPassword = errors.New("password must be 8-12 characters of letters and digits, with exactly one uppercase letter and exactly two digits")
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s matches local@domain.tld with an
// alphabetic final label of at least two characters.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPassword reports whether s is 8-12 ASCII letters and digits
// containing exactly one uppercase letter and exactly two digits (not
// necessarily adjacent), the rest lowercase letters.
func ValidPassword(s string) bool {
	if len(s) < 8 || len(s) > 12 {
		return false
	}
	var upper, digit int
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			upper++
		case c >= '0' && c <= '9':
			digit++
		case c >= 'a' && c <= 'z':
			// lowercase is the filler
		default:
			return false
		}
	}
	return upper == 1 && digit == 2
}

// ValidateEmail is the error-returning form of ValidEmail for pipeline use.
func ValidateEmail(s string) error {
	if s == "" {
		return ErrEmailRequired
	}
	if !ValidEmail(s) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword is the error-returning form of ValidPassword.
func ValidatePassword(s string) error {
	if !ValidPassword(s) {
		return ErrInvalidPassword
	}
	return nil
}
