package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

type Snapshot struct {
	Participants               []ParticipantOption
	Occurrences                []OccurrenceOption
	RequireOccurrenceSelection bool
}

type RegisterRequest struct {
	EventID       uint
	ParticipantID uint
	Note          string
	// Occurrences is empty to register to every session.
	Occurrences []string
	Delivery    domain.DeliveryMode
}

type RegisterOutcome struct {
	RegistrationID    uint
	Status            domain.RegistrationStatus
	Message           string
	Updated           bool
	Payment           *Payment
	PaymentError      bool
	PaymentEmailError bool
}

// Transport carries the controller calls to the server.
type Transport interface {
	Participants(ctx context.Context, eventID uint) ([]ParticipantOption, error)
	Occurrences(ctx context.Context, eventID uint) (occurrences []OccurrenceOption, requireSelection bool, err error)
	Register(ctx context.Context, req RegisterRequest) (RegisterOutcome, error)
	Unregister(ctx context.Context, eventID, participantID uint) (message string, err error)
}

// Navigator opens the checkout page. Implementations decide what a new tab
// is.
type Navigator interface {
	OpenInNewTab(url string) error
}

var ErrUnexpectedResponse = errors.New("unexpected response")

// TransportError is a non-2xx answer. Message is the server message when the
// body could be decoded.
type TransportError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *TransportError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.StatusCode)
	}

	return fmt.Sprintf("server answered %d: %s", e.StatusCode, e.Message)
}
