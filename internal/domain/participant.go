package domain

import "time"

type Participant struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	GuardianID *uint      `json:"guardian_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ParticipantIdentity is the authenticated member on whose behalf an
// operation runs. It is resolved once at the transport boundary.
type ParticipantIdentity struct {
	MemberID uint
}

func (id ParticipantIdentity) IsZero() bool {
	return id.MemberID == 0
}

type Eligibility struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// Candidate is a participant the member may register for an event, as shown
// by the participant picker.
type Candidate struct {
	ParticipantID uint               `json:"participant_id"`
	Name          string             `json:"name"`
	Eligibility   Eligibility        `json:"eligibility"`
	Status        RegistrationStatus `json:"status"`
}
