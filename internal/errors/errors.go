package errors

import (
	"errors"
	"fmt"
)

// Typed failures for the interview session lifecycle
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExpired   = errors.New("session expired")
	ErrSessionCompleted = errors.New("session already completed")
	ErrNoActiveQuestion = errors.New("no active question")
	ErrStaleQuestion    = errors.New("question already answered")

	// Identity / anti-sharing errors
	ErrBrowserMismatch  = errors.New("session is locked to a different browser")
	ErrIdentityMapWrite = errors.New("persistent identity map write failed")

	// Link / artifact errors
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrLinkTokenInvalid    = errors.New("link token invalid")
	ErrLinkNotYetActive    = errors.New("interview link not yet active")
	ErrLinkWindowClosed    = errors.New("interview link window has closed")
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
