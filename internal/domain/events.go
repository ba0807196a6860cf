package domain

import "time"

type EventKind string

const (
	KindRegistrationCreated   EventKind = "registration.created"
	KindRegistrationUpdated   EventKind = "registration.updated"
	KindRegistrationCancelled EventKind = "registration.cancelled"
)

// DomainEvent is a typed notification emitted after a registration
// transaction commits.
type DomainEvent interface {
	Kind() EventKind
	AggregateID() uint
}

// Envelope wraps a DomainEvent with delivery metadata.
type Envelope struct {
	ID         string      `json:"id"`
	Kind       EventKind   `json:"kind"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    DomainEvent `json:"payload"`
}

type RegistrationCreated struct {
	RegistrationID uint               `json:"registration_id"`
	EventID        uint               `json:"event_id"`
	ParticipantID  uint               `json:"participant_id"`
	Status         RegistrationStatus `json:"status"`
	Reregistered   bool               `json:"reregistered"`
}

func (RegistrationCreated) Kind() EventKind     { return KindRegistrationCreated }
func (e RegistrationCreated) AggregateID() uint { return e.EventID }

type RegistrationUpdated struct {
	RegistrationID    uint `json:"registration_id"`
	EventID           uint `json:"event_id"`
	ParticipantID     uint `json:"participant_id"`
	AssignmentChanged bool `json:"assignment_changed"`
	NoteChanged       bool `json:"note_changed"`
}

func (RegistrationUpdated) Kind() EventKind     { return KindRegistrationUpdated }
func (e RegistrationUpdated) AggregateID() uint { return e.EventID }

type RegistrationCancelled struct {
	RegistrationID uint               `json:"registration_id"`
	EventID        uint               `json:"event_id"`
	ParticipantID  uint               `json:"participant_id"`
	PreviousStatus RegistrationStatus `json:"previous_status"`
}

func (RegistrationCancelled) Kind() EventKind     { return KindRegistrationCancelled }
func (e RegistrationCancelled) AggregateID() uint { return e.EventID }
