// Package client drives the registration form of an event: participant
// picker, session calendar, note, confirmation and payment summary. State
// only changes through Reduce, UI code subscribes to a Controller and
// dispatches actions.
package client

import (
	"slices"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
)

const genericFailureMessage = "Something went wrong, please try again."

type ParticipantOption struct {
	ID       uint
	Name     string
	Eligible bool
	Reasons  []string
	// Status is the registration status for the event, empty when the
	// participant never registered.
	Status domain.RegistrationStatus
}

// Selectable reports whether the participant can be picked for a new
// registration.
func (p ParticipantOption) Selectable() bool {
	return p.Eligible && !p.Status.IsLive()
}

type OccurrenceOption struct {
	ID    string
	Label string
	Past  bool
}

type Payment struct {
	CheckoutURL     string
	AmountLabel     string
	OccurrenceCount int
	Delivery        domain.DeliveryMode
	Sent            bool
}

// State is an immutable snapshot. Reduce returns a new one, slices are
// never shared with the previous state once modified.
type State struct {
	EventID                    uint
	Phase                      Phase
	RequireOccurrenceSelection bool

	Participants []ParticipantOption
	Occurrences  []OccurrenceOption

	SelectedParticipant uint
	// SelectedOccurrences is kept sorted.
	SelectedOccurrences []string
	Note                string
	Confirmed           bool
	Delivery            domain.DeliveryMode

	Message string
	Guard   Guard

	Payment          *Payment
	PaymentModalOpen bool
}

func NewState(eventID uint) State {
	return State{
		EventID: eventID,
		Phase:   PhaseIdle,
	}
}

func (s State) Participant(id uint) (ParticipantOption, bool) {
	i := slices.IndexFunc(s.Participants, func(p ParticipantOption) bool { return p.ID == id })
	if i < 0 {
		return ParticipantOption{}, false
	}

	return s.Participants[i], true
}

func (s State) Occurrence(id string) (OccurrenceOption, bool) {
	i := slices.IndexFunc(s.Occurrences, func(o OccurrenceOption) bool { return o.ID == id })
	if i < 0 {
		return OccurrenceOption{}, false
	}

	return s.Occurrences[i], true
}

func (s State) IsSelected(occurrenceID string) bool {
	_, found := slices.BinarySearch(s.SelectedOccurrences, occurrenceID)
	return found
}

// firstSelectable is the fallback when the selected participant can no
// longer be registered. Zero when nobody is left.
func (s State) firstSelectable() uint {
	for _, p := range s.Participants {
		if p.Selectable() {
			return p.ID
		}
	}

	return 0
}
