package domain

import "time"

type RegistrationStatus string

const (
	// StatusAbsent only appears in transition history, as the origin of the
	// first transition of a registration.
	StatusAbsent     RegistrationStatus = "absent"
	StatusActive     RegistrationStatus = "active"
	StatusWaitlisted RegistrationStatus = "waitlisted"
	StatusCancelled  RegistrationStatus = "cancelled"
)

// IsLive reports whether the status holds a seat or a waitlist slot.
func (s RegistrationStatus) IsLive() bool {
	return s == StatusActive || s == StatusWaitlisted
}

type AssignmentMode string

const (
	AssignmentAll    AssignmentMode = "all"
	AssignmentCustom AssignmentMode = "custom"
)

// Assignment records which occurrences a registration applies to. In "all"
// mode OccurrenceIDs is empty and the registration follows every occurrence
// the event produces, including ones added later.
type Assignment struct {
	Mode          AssignmentMode `json:"mode"`
	OccurrenceIDs []string       `json:"occurrenceIds"`
}

func AllOccurrences() Assignment {
	return Assignment{Mode: AssignmentAll, OccurrenceIDs: []string{}}
}

type Registration struct {
	ID            uint               `json:"id"`
	EventID       uint               `json:"event_id"`
	ParticipantID uint               `json:"participant_id"`
	GuardianID    *uint              `json:"guardian_id,omitempty"`
	Status        RegistrationStatus `json:"status"`
	Note          string             `json:"note"`
	Assignment    Assignment         `json:"assignment"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type Transition struct {
	RegistrationID uint               `json:"registration_id"`
	From           RegistrationStatus `json:"from"`
	To             RegistrationStatus `json:"to"`
	At             time.Time          `json:"at"`
}

// Counts are live registration counts of an event, taken inside the
// registration transaction.
type Counts struct {
	Active     int
	Waitlisted int
}

// RegistrationState is what a Mutation sees: the locked event, the current
// registration for the (event, participant) key if any, and live counts.
type RegistrationState struct {
	Event    Event
	Existing *Registration
	Counts   Counts
}

// Mutation decides the next registration from the current state. When write
// is false nothing is persisted and the returned registration is handed back
// as is.
type Mutation func(state RegistrationState) (next Registration, write bool, err error)
