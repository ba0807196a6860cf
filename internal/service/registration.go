package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vietanh2810/occurrence-registration-api/internal/assignment"
	"github.com/vietanh2810/occurrence-registration-api/internal/capacity"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/occurrence"
)

type EventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Event, error)
}

type RegistrationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindLive(ctx context.Context, eventID uint, participantIDs []uint) ([]domain.Registration, error)
	FindTransitions(ctx context.Context, registrationID uint) ([]domain.Transition, error)
	Mutate(ctx context.Context, eventID, participantID uint, fn domain.Mutation) (domain.Registration, error)
}

type ParticipantAuthorizer interface {
	Authorize(ctx context.Context, identity domain.ParticipantIdentity, participantID uint) (domain.Participant, error)
}

type EligibilityChecker interface {
	Check(event domain.Event, participant domain.Participant) domain.Eligibility
}

type PaymentOrchestrator interface {
	Orchestrate(ctx context.Context, registration domain.Registration, event domain.Event, participant domain.Participant, delivery domain.DeliveryMode) domain.PaymentOutcome
}

type EventPublisher interface {
	Publish(ctx context.Context, evt domain.DomainEvent)
}

type RegistrationPolicy struct {
	// AllowOngoingSeries keeps a recurring series open after its first
	// session has started, as long as a future session remains.
	AllowOngoingSeries bool
	NoteMaxLength      int
}

type ResultKind string

const (
	ResultCreated   ResultKind = "created"
	ResultUpdated   ResultKind = "updated"
	ResultUnchanged ResultKind = "unchanged"
)

type Changes struct {
	Assignment bool `json:"assignments"`
	Note       bool `json:"note"`
}

func (c Changes) Any() bool {
	return c.Assignment || c.Note
}

type RegisterInput struct {
	EventID       uint
	ParticipantID uint
	// Note and Selection are nil when the caller did not send them.
	Note      *string
	Selection *assignment.Selection
	Delivery  domain.DeliveryMode
}

type UpdateInput struct {
	Note      *string
	Selection *assignment.Selection
}

type RegisterResult struct {
	Kind         ResultKind
	Registration domain.Registration
	Capacity     capacity.Evaluation
	Reregistered bool
	Changes      Changes
	Payment      domain.PaymentOutcome
	Message      string
}

type RegistrationService struct {
	events        EventRepository
	registrations RegistrationRepository
	participants  ParticipantAuthorizer
	eligibility   EligibilityChecker
	payments      PaymentOrchestrator
	publisher     EventPublisher
	resolver      *occurrence.Resolver
	policy        RegistrationPolicy
	now           func() time.Time
}

func NewRegistrationService(
	events EventRepository,
	registrations RegistrationRepository,
	participants ParticipantAuthorizer,
	eligibility EligibilityChecker,
	payments PaymentOrchestrator,
	publisher EventPublisher,
	resolver *occurrence.Resolver,
	policy RegistrationPolicy,
) *RegistrationService {
	return &RegistrationService{
		events:        events,
		registrations: registrations,
		participants:  participants,
		eligibility:   eligibility,
		payments:      payments,
		publisher:     publisher,
		resolver:      resolver,
		policy:        policy,
		now:           time.Now,
	}
}

// Register creates the registration of a participant to an event. When a live
// registration already exists for the pair the call updates its assignment
// and note instead, so repeating it with the same input changes nothing.
func (s *RegistrationService) Register(ctx context.Context, identity domain.ParticipantIdentity, in RegisterInput) (RegisterResult, error) {
	if err := s.validateNote(in.Note); err != nil {
		return RegisterResult{}, err
	}

	participant, err := s.participants.Authorize(ctx, identity, in.ParticipantID)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("s.participants.Authorize -> %w", err)
	}

	event, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	if err := s.checkOpen(event); err != nil {
		return RegisterResult{}, err
	}

	if eligibility := s.eligibility.Check(event, participant); !eligibility.Eligible {
		return RegisterResult{}, &IneligibleError{Reasons: eligibility.Reasons}
	}

	var guardianID *uint
	if identity.MemberID != participant.ID {
		guardianID = &identity.MemberID
	}

	var res RegisterResult
	saved, err := s.registrations.Mutate(ctx, event.ID, participant.ID, func(state domain.RegistrationState) (domain.Registration, bool, error) {
		res = RegisterResult{}

		if state.Existing != nil && state.Existing.Status.IsLive() {
			next, changes, err := s.applyChanges(state.Event, *state.Existing, in.Selection, in.Note)
			if err != nil {
				return domain.Registration{}, false, err
			}

			res.Changes = changes
			if !changes.Any() {
				res.Kind = ResultUnchanged
				return *state.Existing, false, nil
			}

			res.Kind = ResultUpdated
			return next, true, nil
		}

		requested := domain.AllOccurrences()
		if in.Selection != nil {
			requested = assignment.Normalize(*in.Selection)
		}
		if err := s.validateAssignment(state.Event, requested, nil); err != nil {
			return domain.Registration{}, false, err
		}

		eval := capacity.Evaluate(state.Event, state.Counts)
		status, ok := eval.Status()
		if !ok {
			return domain.Registration{}, false, ErrCapacityRejected
		}

		res.Kind = ResultCreated
		res.Capacity = eval
		res.Reregistered = state.Existing != nil

		next := domain.Registration{
			EventID:       state.Event.ID,
			ParticipantID: participant.ID,
			GuardianID:    guardianID,
			Status:        status,
			Assignment:    requested,
		}
		if in.Note != nil {
			next.Note = *in.Note
		}

		return next, true, nil
	})
	if err != nil {
		return RegisterResult{}, fmt.Errorf("s.registrations.Mutate -> %w", err)
	}
	res.Registration = saved

	switch res.Kind {
	case ResultCreated:
		s.publisher.Publish(ctx, domain.RegistrationCreated{
			RegistrationID: saved.ID,
			EventID:        saved.EventID,
			ParticipantID:  saved.ParticipantID,
			Status:         saved.Status,
			Reregistered:   res.Reregistered,
		})

		res.Payment = s.payments.Orchestrate(ctx, saved, event, participant, in.Delivery)
	case ResultUpdated:
		s.publishUpdated(ctx, saved, res.Changes)
	}

	res.Message = registerMessage(res)

	return res, nil
}

// Update changes the occurrence assignment and/or the note of a live
// registration. Session changes require registrations to still be open.
func (s *RegistrationService) Update(ctx context.Context, identity domain.ParticipantIdentity, registrationID uint, in UpdateInput) (RegisterResult, error) {
	if err := s.validateNote(in.Note); err != nil {
		return RegisterResult{}, err
	}

	current, err := s.registrations.FindByID(ctx, registrationID)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("s.registrations.FindByID -> %w", err)
	}
	if !current.Status.IsLive() {
		return RegisterResult{}, ErrRegistrationNotFound
	}

	if _, err := s.participants.Authorize(ctx, identity, current.ParticipantID); err != nil {
		return RegisterResult{}, fmt.Errorf("s.participants.Authorize -> %w", err)
	}

	if in.Selection != nil && !assignment.Equal(assignment.Normalize(*in.Selection), current.Assignment) {
		event, err := s.events.FindByID(ctx, current.EventID)
		if err != nil {
			return RegisterResult{}, fmt.Errorf("s.events.FindByID -> %w", err)
		}
		if err := s.checkOpen(event); err != nil {
			return RegisterResult{}, err
		}
	}

	var res RegisterResult
	saved, err := s.registrations.Mutate(ctx, current.EventID, current.ParticipantID, func(state domain.RegistrationState) (domain.Registration, bool, error) {
		res = RegisterResult{}

		existing := state.Existing
		if existing == nil || existing.ID != registrationID || !existing.Status.IsLive() {
			return domain.Registration{}, false, ErrRegistrationNotFound
		}

		next, changes, err := s.applyChanges(state.Event, *existing, in.Selection, in.Note)
		if err != nil {
			return domain.Registration{}, false, err
		}

		res.Changes = changes
		if !changes.Any() {
			res.Kind = ResultUnchanged
			return *existing, false, nil
		}

		res.Kind = ResultUpdated
		return next, true, nil
	})
	if err != nil {
		return RegisterResult{}, fmt.Errorf("s.registrations.Mutate -> %w", err)
	}
	res.Registration = saved

	if res.Kind == ResultUpdated {
		s.publishUpdated(ctx, saved, res.Changes)
	}

	res.Message = registerMessage(res)

	return res, nil
}

type CancelResult struct {
	Registration domain.Registration
	Message      string
}

// Cancel moves the live registration of the participant to cancelled. The row
// is kept so that a later registration reuses it. Cancelling an absent or
// already cancelled registration reports ErrRegistrationNotFound.
func (s *RegistrationService) Cancel(ctx context.Context, identity domain.ParticipantIdentity, eventID, participantID uint) (CancelResult, error) {
	if _, err := s.participants.Authorize(ctx, identity, participantID); err != nil {
		return CancelResult{}, fmt.Errorf("s.participants.Authorize -> %w", err)
	}

	var previous domain.RegistrationStatus
	saved, err := s.registrations.Mutate(ctx, eventID, participantID, func(state domain.RegistrationState) (domain.Registration, bool, error) {
		if state.Existing == nil || !state.Existing.Status.IsLive() {
			return domain.Registration{}, false, ErrRegistrationNotFound
		}

		previous = state.Existing.Status
		next := *state.Existing
		next.Status = domain.StatusCancelled

		return next, true, nil
	})
	if err != nil {
		return CancelResult{}, fmt.Errorf("s.registrations.Mutate -> %w", err)
	}

	s.publisher.Publish(ctx, domain.RegistrationCancelled{
		RegistrationID: saved.ID,
		EventID:        saved.EventID,
		ParticipantID:  saved.ParticipantID,
		PreviousStatus: previous,
	})

	return CancelResult{
		Registration: saved,
		Message:      "Your registration has been cancelled.",
	}, nil
}

// checkOpen applies the registration deadline. An event without an explicit
// deadline closes when it starts, except for a recurring series that still
// has future sessions when the policy allows it.
func (s *RegistrationService) checkOpen(event domain.Event) error {
	now := s.now()

	if event.RegistrationDeadline != nil {
		if now.After(*event.RegistrationDeadline) {
			return ErrRegistrationClosed
		}
	} else if !event.Schedule.StartsAt.After(now) {
		ongoing := s.policy.AllowOngoingSeries && event.Schedule.Mode == domain.ScheduleRecurring
		if !ongoing {
			return ErrRegistrationClosed
		}
	}

	if !s.resolver.HasFuture(event) {
		return ErrRegistrationClosed
	}

	return nil
}

func (s *RegistrationService) validateNote(note *string) error {
	if note == nil || s.policy.NoteMaxLength <= 0 {
		return nil
	}
	if utf8.RuneCountInString(*note) > s.policy.NoteMaxLength {
		return invalid("note must be at most %d characters", s.policy.NoteMaxLength)
	}

	return nil
}

// validateAssignment checks requested against the event's sessions. held is
// the assignment the registration already has, nil for a new registration:
// sessions already held may stay selected after they started.
func (s *RegistrationService) validateAssignment(event domain.Event, requested domain.Assignment, held *domain.Assignment) error {
	if requested.Mode != domain.AssignmentCustom {
		if event.RequireOccurrenceSelection {
			return invalid("select at least one session")
		}
		return nil
	}

	catalog := s.resolver.Catalog(event)
	for _, id := range requested.OccurrenceIDs {
		occ, ok := catalog[id]
		if !ok {
			return invalid("unknown session %q", id)
		}
		if occ.IsPast && (held == nil || !assignment.Contains(*held, id)) {
			return invalid("session %q has already started", id)
		}
	}

	return nil
}

// applyChanges computes the next state of a live registration. A nil
// selection or note keeps the stored value.
func (s *RegistrationService) applyChanges(event domain.Event, existing domain.Registration, sel *assignment.Selection, note *string) (domain.Registration, Changes, error) {
	next := existing
	var changes Changes

	if sel != nil {
		// An empty selection only means "all" for a registration that never
		// had a custom one; clearing a custom selection is not a widening.
		if sel.Empty() && existing.Assignment.Mode == domain.AssignmentCustom {
			return domain.Registration{}, Changes{}, invalid("select at least one session")
		}

		requested := assignment.Normalize(*sel)
		if !assignment.Equal(requested, existing.Assignment) {
			held := existing.Assignment
			if err := s.validateAssignment(event, requested, &held); err != nil {
				return domain.Registration{}, Changes{}, err
			}
			next.Assignment = requested
			changes.Assignment = true
		}
	}

	if note != nil && *note != existing.Note {
		next.Note = *note
		changes.Note = true
	}

	return next, changes, nil
}

func (s *RegistrationService) publishUpdated(ctx context.Context, reg domain.Registration, changes Changes) {
	s.publisher.Publish(ctx, domain.RegistrationUpdated{
		RegistrationID:    reg.ID,
		EventID:           reg.EventID,
		ParticipantID:     reg.ParticipantID,
		AssignmentChanged: changes.Assignment,
		NoteChanged:       changes.Note,
	})
}

func registerMessage(res RegisterResult) string {
	switch res.Kind {
	case ResultUnchanged:
		return "You are already registered for this event."
	case ResultUpdated:
		switch {
		case res.Changes.Assignment && res.Changes.Note:
			return "Your sessions and note have been updated."
		case res.Changes.Assignment:
			return "Your sessions have been updated."
		default:
			return "Your note has been updated."
		}
	}

	if res.Registration.Status == domain.StatusWaitlisted {
		return "The event is full. You have been added to the waitlist."
	}

	msg := "Your registration is confirmed."
	payment := res.Payment
	switch {
	case !payment.Required:
	case payment.PaymentError:
		msg += " The payment could not be initiated, you can pay on site."
	case payment.Delivery == domain.DeliveryDeferred && payment.EmailError:
		msg += " The payment link could not be emailed, you can pay on site."
	case payment.Delivery == domain.DeliveryDeferred:
		msg += fmt.Sprintf(" A payment link for %s has been sent by email.", payment.AmountLabel)
	default:
		msg += fmt.Sprintf(" Please complete the payment of %s.", payment.AmountLabel)
	}

	return msg
}
