package client

import "errors"

// Guard names the precondition of Submit that was not met.
type Guard string

const (
	GuardInFlight           Guard = "in_flight"
	GuardNoParticipant      Guard = "no_participant"
	GuardNotSelectable      Guard = "participant_not_selectable"
	GuardOccurrenceRequired Guard = "occurrence_required"
	GuardNotConfirmed       Guard = "not_confirmed"
)

var guardMessages = map[Guard]string{
	GuardInFlight:           "A registration is already being sent.",
	GuardNoParticipant:      "Please choose who you are registering.",
	GuardNotSelectable:      "This participant cannot be registered for this event.",
	GuardOccurrenceRequired: "Please select at least one session.",
	GuardNotConfirmed:       "Please confirm your registration before sending it.",
}

var ErrGuard = errors.New("registration cannot be sent")

type GuardError struct {
	Guard Guard
}

func (e *GuardError) Error() string {
	return guardMessages[e.Guard]
}

func (e *GuardError) Is(target error) bool {
	return target == ErrGuard
}

// CheckSubmit returns the first unmet guard, nil when the form can be sent.
func CheckSubmit(s State) *GuardError {
	if s.Phase == PhaseSubmitting {
		return &GuardError{Guard: GuardInFlight}
	}
	if s.SelectedParticipant == 0 {
		return &GuardError{Guard: GuardNoParticipant}
	}

	p, ok := s.Participant(s.SelectedParticipant)
	if !ok || !p.Selectable() {
		return &GuardError{Guard: GuardNotSelectable}
	}

	if s.RequireOccurrenceSelection && len(s.SelectedOccurrences) == 0 {
		return &GuardError{Guard: GuardOccurrenceRequired}
	}
	if !s.Confirmed {
		return &GuardError{Guard: GuardNotConfirmed}
	}

	return nil
}
