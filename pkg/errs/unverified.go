package errs

import (
	"errors"
	"fmt"
)

// ErrUnverified marks outcomes where the target may well exist but the check
// couldn't confirm it: auth walls, rate limits, server errors, disabled
// validators. The warning-policy decides whether these count as broken.
var ErrUnverified = errors.New("can't be verified")

type UnverifiedError struct {
	link   string
	reason string
}

func NewUnverified(link, reason string) UnverifiedError {
	return UnverifiedError{
		link:   link,
		reason: reason,
	}
}

func (e UnverifiedError) Error() string {
	return fmt.Sprintf("can't be verified (%s). Link: '%s'", e.reason, e.link)
}

func (e UnverifiedError) Is(target error) bool { return target == ErrUnverified }

// Reason reports why verification was skipped, for log fields.
func (e UnverifiedError) Reason() string { return e.reason }
