package apierrors

import (
	"errors"
	"fmt"
)

// Common error types for the microblog API client
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not activated")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token errors
	ErrNoToken             = errors.New("no token stored")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// Transport errors
	ErrTimeout           = errors.New("request timed out")
	ErrMalformedResponse = errors.New("malformed response")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
