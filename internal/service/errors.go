package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, with identical text, so callers cannot tell which check failed.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// DuplicateEmailError signals a registration attempt with a taken email.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("Email already registered: %s", e.Email)
}
