package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/occurrence"
)

const allSessionsLabel = "All sessions"

var statusLabels = map[domain.RegistrationStatus]string{
	domain.StatusActive:     "Registered",
	domain.StatusWaitlisted: "Waitlisted",
}

type GuardianResolver interface {
	Dependents(ctx context.Context, guardianID uint) ([]uint, error)
	Household(ctx context.Context, identity domain.ParticipantIdentity) ([]domain.Participant, error)
}

// ReservationService is the read side of registrations. Nothing here writes.
type ReservationService struct {
	events        EventRepository
	registrations RegistrationRepository
	participants  ParticipantRepository
	guardians     GuardianResolver
	authorizer    ParticipantAuthorizer
	eligibility   EligibilityChecker
	resolver      *occurrence.Resolver
}

func NewReservationService(
	events EventRepository,
	registrations RegistrationRepository,
	participants ParticipantRepository,
	guardians GuardianResolver,
	authorizer ParticipantAuthorizer,
	eligibility EligibilityChecker,
	resolver *occurrence.Resolver,
) *ReservationService {
	return &ReservationService{
		events:        events,
		registrations: registrations,
		participants:  participants,
		guardians:     guardians,
		authorizer:    authorizer,
		eligibility:   eligibility,
		resolver:      resolver,
	}
}

// ListReservations lists the live registrations of the member, and of their
// dependents when includeDependents is set. A zero eventID lists every event.
func (s *ReservationService) ListReservations(ctx context.Context, identity domain.ParticipantIdentity, eventID uint, includeDependents bool) ([]domain.ReservationView, error) {
	if identity.IsZero() {
		return nil, ErrNotAuthorized
	}

	if eventID != 0 {
		if _, err := s.events.FindByID(ctx, eventID); err != nil {
			return nil, fmt.Errorf("s.events.FindByID -> %w", err)
		}
	}

	allowed := []uint{identity.MemberID}
	if includeDependents {
		dependents, err := s.guardians.Dependents(ctx, identity.MemberID)
		if err != nil {
			return nil, fmt.Errorf("s.guardians.Dependents -> %w", err)
		}
		allowed = append(allowed, dependents...)
	}

	registrations, err := s.registrations.FindLive(ctx, eventID, allowed)
	if err != nil {
		return nil, fmt.Errorf("s.registrations.FindLive -> %w", err)
	}
	if len(registrations) == 0 {
		return []domain.ReservationView{}, nil
	}

	names, err := s.participantNames(ctx, registrations)
	if err != nil {
		return nil, err
	}

	events, err := s.eventsByID(ctx, registrations)
	if err != nil {
		return nil, err
	}

	catalogs := make(map[uint]map[string]domain.Occurrence)
	views := make([]domain.ReservationView, 0, len(registrations))
	for _, reg := range registrations {
		event := events[reg.EventID]

		catalog, ok := catalogs[reg.EventID]
		if !ok {
			catalog = s.resolver.Catalog(event)
			catalogs[reg.EventID] = catalog
		}

		views = append(views, domain.ReservationView{
			RegistrationID: reg.ID,
			EventID:        reg.EventID,
			EventTitle:     event.Title,
			ParticipantID:  reg.ParticipantID,
			Name:           names[reg.ParticipantID],
			Status:         reg.Status,
			StatusLabel:    statusLabels[reg.Status],
			Occurrences:    s.labels(reg.Assignment, catalog),
			CanCancel:      reg.Status.IsLive(),
		})
	}

	return views, nil
}

// labels renders the assigned sessions. Ids that no longer resolve, for
// instance after the series was shortened, are shown as stored.
func (s *ReservationService) labels(a domain.Assignment, catalog map[string]domain.Occurrence) []string {
	if a.Mode != domain.AssignmentCustom {
		return []string{allSessionsLabel}
	}

	labels := make([]string, 0, len(a.OccurrenceIDs))
	for _, id := range a.OccurrenceIDs {
		if occ, ok := catalog[id]; ok {
			labels = append(labels, s.resolver.Label(occ))
			continue
		}
		labels = append(labels, id)
	}

	return labels
}

func (s *ReservationService) participantNames(ctx context.Context, registrations []domain.Registration) (map[uint]string, error) {
	ids := make([]uint, 0, len(registrations))
	for _, reg := range registrations {
		ids = append(ids, reg.ParticipantID)
	}
	slices.Sort(ids)

	participants, err := s.participants.FindByIDs(ctx, slices.Compact(ids))
	if err != nil {
		return nil, fmt.Errorf("s.participants.FindByIDs -> %w", err)
	}

	names := make(map[uint]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	return names, nil
}

func (s *ReservationService) eventsByID(ctx context.Context, registrations []domain.Registration) (map[uint]domain.Event, error) {
	ids := make([]uint, 0, len(registrations))
	for _, reg := range registrations {
		ids = append(ids, reg.EventID)
	}
	slices.Sort(ids)

	events, err := s.events.FindByIDs(ctx, slices.Compact(ids))
	if err != nil {
		return nil, fmt.Errorf("s.events.FindByIDs -> %w", err)
	}

	byID := make(map[uint]domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	return byID, nil
}

// ListCandidates returns the participants the member may pick for eventID:
// themselves and their dependents, with eligibility and current status.
func (s *ReservationService) ListCandidates(ctx context.Context, identity domain.ParticipantIdentity, eventID uint) ([]domain.Candidate, error) {
	if identity.IsZero() {
		return nil, ErrNotAuthorized
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	household, err := s.guardians.Household(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("s.guardians.Household -> %w", err)
	}

	ids := make([]uint, len(household))
	for i, p := range household {
		ids[i] = p.ID
	}

	live, err := s.registrations.FindLive(ctx, event.ID, ids)
	if err != nil {
		return nil, fmt.Errorf("s.registrations.FindLive -> %w", err)
	}

	statuses := make(map[uint]domain.RegistrationStatus, len(live))
	for _, reg := range live {
		statuses[reg.ParticipantID] = reg.Status
	}

	candidates := make([]domain.Candidate, len(household))
	for i, p := range household {
		status, ok := statuses[p.ID]
		if !ok {
			status = domain.StatusAbsent
		}

		candidates[i] = domain.Candidate{
			ParticipantID: p.ID,
			Name:          p.Name,
			Eligibility:   s.eligibility.Check(event, p),
			Status:        status,
		}
	}

	return candidates, nil
}

// ListOccurrences returns the event and its labelled sessions for the
// calendar. Past sessions are included, flagged, when includePast is set.
func (s *ReservationService) ListOccurrences(ctx context.Context, eventID uint, includePast bool, limit int) (domain.Event, []domain.Occurrence, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	occurrences := occurrence.Collect(s.resolver.Resolve(event, occurrence.Options{
		Max:         limit,
		IncludePast: includePast,
	}))
	for i := range occurrences {
		occurrences[i].Label = s.resolver.Label(occurrences[i])
	}

	return event, occurrences, nil
}

// History returns the status transitions of a registration the member owns.
func (s *ReservationService) History(ctx context.Context, identity domain.ParticipantIdentity, registrationID uint) ([]domain.Transition, error) {
	reg, err := s.registrations.FindByID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("s.registrations.FindByID -> %w", err)
	}

	if _, err := s.authorizer.Authorize(ctx, identity, reg.ParticipantID); err != nil {
		return nil, fmt.Errorf("s.authorizer.Authorize -> %w", err)
	}

	transitions, err := s.registrations.FindTransitions(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("s.registrations.FindTransitions -> %w", err)
	}

	return transitions, nil
}
