package service

import (
	"errors"
	"fmt"

	"skirent-backend/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyAccepted    = errors.New("order already accepted")
	ErrAlreadyReturned    = errors.New("order already returned")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError marks a request the caller can fix; the HTTP layer maps it
// to a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func asNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
