package client

import (
	"slices"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

// Action is a named state change. Only Reduce interprets actions.
type Action interface {
	actionName() string
}

// SnapshotLoaded replaces the server-side view wholesale.
type SnapshotLoaded struct {
	Participants               []ParticipantOption
	Occurrences                []OccurrenceOption
	RequireOccurrenceSelection bool
}

type ParticipantSelected struct{ ParticipantID uint }

type OccurrenceToggled struct{ OccurrenceID string }

type NoteChanged struct{ Note string }

type ConfirmationChanged struct{ Confirmed bool }

type DeliveryChanged struct{ Delivery domain.DeliveryMode }

type SubmitBlocked struct{ Guard Guard }

type SubmitStarted struct{}

type SubmitSucceeded struct {
	ParticipantID uint
	Status        domain.RegistrationStatus
	Message       string
	Payment       *Payment
}

type SubmitFailed struct {
	Message string
	// Code is the error code of the server response, if any.
	Code string
}

type CancelSucceeded struct {
	ParticipantID uint
	Message       string
}

type CancelFailed struct{ Message string }

type PaymentDismissed struct{}

// Acknowledged returns a finished submission to idle.
type Acknowledged struct{}

func (SnapshotLoaded) actionName() string      { return "snapshot_loaded" }
func (ParticipantSelected) actionName() string { return "participant_selected" }
func (OccurrenceToggled) actionName() string   { return "occurrence_toggled" }
func (NoteChanged) actionName() string         { return "note_changed" }
func (ConfirmationChanged) actionName() string { return "confirmation_changed" }
func (DeliveryChanged) actionName() string     { return "delivery_changed" }
func (SubmitBlocked) actionName() string       { return "submit_blocked" }
func (SubmitStarted) actionName() string       { return "submit_started" }
func (SubmitSucceeded) actionName() string     { return "submit_succeeded" }
func (SubmitFailed) actionName() string        { return "submit_failed" }
func (CancelSucceeded) actionName() string     { return "cancel_succeeded" }
func (CancelFailed) actionName() string        { return "cancel_failed" }
func (PaymentDismissed) actionName() string    { return "payment_dismissed" }
func (Acknowledged) actionName() string        { return "acknowledged" }

const alreadyRegisteredCode = "already_registered"

// Reduce is pure: s is never modified.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case SnapshotLoaded:
		s.Participants = slices.Clone(a.Participants)
		s.Occurrences = slices.Clone(a.Occurrences)
		s.RequireOccurrenceSelection = a.RequireOccurrenceSelection
		s.SelectedOccurrences = slices.DeleteFunc(slices.Clone(s.SelectedOccurrences), func(id string) bool {
			o, ok := s.Occurrence(id)
			return !ok || o.Past
		})
		s.SelectedParticipant = keepOrFallback(s, s.SelectedParticipant)

	case ParticipantSelected:
		if p, ok := s.Participant(a.ParticipantID); ok && p.Selectable() {
			s.SelectedParticipant = p.ID
		}

	case OccurrenceToggled:
		o, ok := s.Occurrence(a.OccurrenceID)
		if !ok || o.Past {
			return s
		}
		i, found := slices.BinarySearch(s.SelectedOccurrences, o.ID)
		if found {
			s.SelectedOccurrences = slices.Delete(slices.Clone(s.SelectedOccurrences), i, i+1)
		} else {
			s.SelectedOccurrences = slices.Insert(slices.Clone(s.SelectedOccurrences), i, o.ID)
		}

	case NoteChanged:
		s.Note = a.Note

	case ConfirmationChanged:
		s.Confirmed = a.Confirmed

	case DeliveryChanged:
		s.Delivery = a.Delivery

	case SubmitBlocked:
		s.Phase = PhaseError
		s.Guard = a.Guard
		s.Message = guardMessages[a.Guard]

	case SubmitStarted:
		s.Phase = PhaseSubmitting
		s.Guard = ""
		s.Message = ""

	case SubmitSucceeded:
		s.Phase = PhaseSuccess
		s.Message = a.Message
		s.Participants = withStatus(s.Participants, a.ParticipantID, a.Status)
		s.SelectedParticipant = keepOrFallback(s, s.SelectedParticipant)
		s.SelectedOccurrences = nil
		s.Note = ""
		s.Confirmed = false
		s.Payment = a.Payment
		s.PaymentModalOpen = a.Payment != nil && a.Payment.CheckoutURL != ""

	case SubmitFailed:
		s.Phase = PhaseError
		s.Message = a.Message
		if s.Message == "" {
			s.Message = genericFailureMessage
		}
		if a.Code == alreadyRegisteredCode {
			s.Participants = withStatus(s.Participants, s.SelectedParticipant, domain.StatusActive)
			s.SelectedParticipant = keepOrFallback(s, s.SelectedParticipant)
		}

	case CancelSucceeded:
		s.Message = a.Message
		s.Participants = withStatus(s.Participants, a.ParticipantID, domain.StatusCancelled)
		if s.SelectedParticipant == 0 {
			s.SelectedParticipant = s.firstSelectable()
		}

	case CancelFailed:
		s.Message = a.Message
		if s.Message == "" {
			s.Message = genericFailureMessage
		}

	case PaymentDismissed:
		s.PaymentModalOpen = false

	case Acknowledged:
		if s.Phase == PhaseSuccess || s.Phase == PhaseError {
			s.Phase = PhaseIdle
			s.Guard = ""
			s.Message = ""
		}
	}

	return s
}

// keepOrFallback keeps id while it is still selectable.
func keepOrFallback(s State, id uint) uint {
	if p, ok := s.Participant(id); ok && p.Selectable() {
		return id
	}

	return s.firstSelectable()
}

func withStatus(participants []ParticipantOption, id uint, status domain.RegistrationStatus) []ParticipantOption {
	i := slices.IndexFunc(participants, func(p ParticipantOption) bool { return p.ID == id })
	if i < 0 {
		return participants
	}

	updated := slices.Clone(participants)
	updated[i].Status = status

	return updated
}
