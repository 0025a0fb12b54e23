// Package validation provides input validation utilities
package validation

import (
	"errors"
	"unicode/utf8"
)

// Minimum lengths for account credentials.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
)

// ValidateCredentials checks a username and password supplied at registration.
// Lengths are counted in characters, not bytes.
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password required")
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return errors.New("username must be at least 3 characters long")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return errors.New("password must be at least 3 characters long")
	}
	return nil
}

// ValidateBlog checks the fields every blog must carry.
func ValidateBlog(title, url string) error {
	if title == "" || url == "" {
		return errors.New("title or url missing")
	}
	return nil
}
