package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vietanh2810/occurrence-registration-api/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrParticipantNotFound  = repository.ErrParticipantNotFound
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered

	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAuthorized      = errors.New("not authorized for this participant")
	ErrRegistrationClosed = errors.New("registrations are closed for this event")
	ErrCapacityRejected   = errors.New("event is full")
	ErrIneligible         = errors.New("participant is not eligible")
)

// IneligibleError carries the reasons returned by the eligibility checker.
// It matches ErrIneligible with errors.Is.
type IneligibleError struct {
	Reasons []string
}

func (e *IneligibleError) Error() string {
	if len(e.Reasons) == 0 {
		return ErrIneligible.Error()
	}

	return ErrIneligible.Error() + ": " + strings.Join(e.Reasons, "; ")
}

func (e *IneligibleError) Is(target error) bool {
	return target == ErrIneligible
}

// ValidationError rejects a request before any state change. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Reason string
}

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
