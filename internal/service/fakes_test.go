package service

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func timePtr(t time.Time) *time.Time { return &t }

type fakeEvents struct {
	events map[uint]domain.Event
}

func newFakeEvents(events ...domain.Event) *fakeEvents {
	f := &fakeEvents{events: make(map[uint]domain.Event)}
	for _, e := range events {
		f.events[e.ID] = e
	}

	return f
}

func (f *fakeEvents) FindByID(_ context.Context, id uint) (domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	return e, nil
}

func (f *fakeEvents) FindByIDs(_ context.Context, ids []uint) ([]domain.Event, error) {
	var events []domain.Event
	for _, id := range ids {
		if e, ok := f.events[id]; ok {
			events = append(events, e)
		}
	}

	return events, nil
}

type fakeParticipants struct {
	participants map[uint]domain.Participant
}

func newFakeParticipants(participants ...domain.Participant) *fakeParticipants {
	f := &fakeParticipants{participants: make(map[uint]domain.Participant)}
	for _, p := range participants {
		f.participants[p.ID] = p
	}

	return f
}

func (f *fakeParticipants) FindByID(_ context.Context, id uint) (domain.Participant, error) {
	p, ok := f.participants[id]
	if !ok {
		return domain.Participant{}, ErrParticipantNotFound
	}

	return p, nil
}

func (f *fakeParticipants) FindByIDs(_ context.Context, ids []uint) ([]domain.Participant, error) {
	var participants []domain.Participant
	for _, id := range ids {
		if p, ok := f.participants[id]; ok {
			participants = append(participants, p)
		}
	}

	return participants, nil
}

func (f *fakeParticipants) FindDependents(_ context.Context, guardianID uint) ([]domain.Participant, error) {
	var dependents []domain.Participant
	for _, p := range f.participants {
		if p.GuardianID != nil && *p.GuardianID == guardianID {
			dependents = append(dependents, p)
		}
	}
	slices.SortFunc(dependents, func(a, b domain.Participant) int { return cmp.Compare(a.ID, b.ID) })

	return dependents, nil
}

type registrationKey struct {
	eventID, participantID uint
}

// fakeRegistrations mimics the gorm DAO: one row per key, reused on
// re-registration, with a transition appended on every status change.
type fakeRegistrations struct {
	mu          sync.Mutex
	events      *fakeEvents
	rows        map[registrationKey]domain.Registration
	transitions []domain.Transition
	nextID      uint
}

func newFakeRegistrations(events *fakeEvents) *fakeRegistrations {
	return &fakeRegistrations{
		events: events,
		rows:   make(map[registrationKey]domain.Registration),
	}
}

func (f *fakeRegistrations) FindByID(_ context.Context, id uint) (domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, reg := range f.rows {
		if reg.ID == id {
			return reg, nil
		}
	}

	return domain.Registration{}, ErrRegistrationNotFound
}

func (f *fakeRegistrations) FindLive(_ context.Context, eventID uint, participantIDs []uint) ([]domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	allowed := make(map[uint]bool)
	for _, id := range participantIDs {
		allowed[id] = true
	}

	var live []domain.Registration
	for _, reg := range f.rows {
		if !reg.Status.IsLive() || !allowed[reg.ParticipantID] {
			continue
		}
		if eventID != 0 && reg.EventID != eventID {
			continue
		}
		live = append(live, reg)
	}
	slices.SortFunc(live, func(a, b domain.Registration) int { return cmp.Compare(a.ID, b.ID) })

	return live, nil
}

func (f *fakeRegistrations) FindTransitions(_ context.Context, registrationID uint) ([]domain.Transition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var transitions []domain.Transition
	for _, t := range f.transitions {
		if t.RegistrationID == registrationID {
			transitions = append(transitions, t)
		}
	}

	return transitions, nil
}

func (f *fakeRegistrations) Mutate(_ context.Context, eventID, participantID uint, fn domain.Mutation) (domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events.events[eventID]
	if !ok {
		return domain.Registration{}, ErrEventNotFound
	}

	key := registrationKey{eventID, participantID}
	state := domain.RegistrationState{Event: event}
	if existing, ok := f.rows[key]; ok {
		state.Existing = &existing
	}
	for _, reg := range f.rows {
		if reg.EventID != eventID {
			continue
		}
		switch reg.Status {
		case domain.StatusActive:
			state.Counts.Active++
		case domain.StatusWaitlisted:
			state.Counts.Waitlisted++
		}
	}

	next, write, err := fn(state)
	if err != nil {
		return domain.Registration{}, err
	}
	if !write {
		return next, nil
	}

	from := domain.StatusAbsent
	next.EventID, next.ParticipantID = eventID, participantID
	if state.Existing != nil {
		from = state.Existing.Status
		next.ID = state.Existing.ID
		next.CreatedAt = state.Existing.CreatedAt
	} else {
		f.nextID++
		next.ID = f.nextID
		next.CreatedAt = testNow
	}
	next.UpdatedAt = testNow
	f.rows[key] = next

	if from != next.Status {
		f.transitions = append(f.transitions, domain.Transition{
			RegistrationID: next.ID,
			From:           from,
			To:             next.Status,
			At:             testNow,
		})
	}

	return next, nil
}

func (f *fakeRegistrations) liveCount(eventID, participantID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for key, reg := range f.rows {
		if key.eventID == eventID && key.participantID == participantID && reg.Status.IsLive() {
			n++
		}
	}

	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt domain.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, evt)
}

func (p *recordingPublisher) kinds() []domain.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()

	kinds := make([]domain.EventKind, len(p.events))
	for i, e := range p.events {
		kinds[i] = e.Kind()
	}

	return kinds
}

type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (domain.Checkout, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Checkout), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to domain.Recipient, msg domain.Message) error {
	args := m.Called(ctx, to, msg)
	return args.Error(0)
}

type fakePayments struct {
	mu      sync.Mutex
	intents []domain.PaymentIntent
}

func (f *fakePayments) Create(_ context.Context, intent domain.PaymentIntent) (domain.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	intent.ID = uint(len(f.intents) + 1)
	f.intents = append(f.intents, intent)

	return intent, nil
}

func (f *fakePayments) UpdateStatus(_ context.Context, id uint, status domain.PaymentStatus, failureReason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.intents {
		if f.intents[i].ID == id {
			f.intents[i].Status = status
			f.intents[i].FailureReason = failureReason
		}
	}

	return nil
}
