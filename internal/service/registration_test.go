package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/occurrence-registration-api/internal/assignment"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/occurrence"
)

const (
	fixedEventID     uint = 1
	seriesEventID    uint = 2
	pastFixedEventID uint = 3
)

type registrationFixture struct {
	svc       *RegistrationService
	events    *fakeEvents
	regs      *fakeRegistrations
	publisher *recordingPublisher
	payments  *fakePayments
	gateway   *MockCheckoutGateway
	mailer    *MockMailer
	now       time.Time
}

func (f *registrationFixture) clock() time.Time { return f.now }

func fixedEvent(id uint, priceCents int64, capacityTotal, waitlistTotal *int) domain.Event {
	return domain.Event{
		ID:         id,
		Title:      "Climbing initiation",
		PriceCents: priceCents,
		Currency:   "eur",
		Schedule: domain.Schedule{
			Mode:     domain.ScheduleFixed,
			StartsAt: time.Date(2026, time.March, 17, 10, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC),
		},
		CapacityTotal: capacityTotal,
		WaitlistTotal: waitlistTotal,
	}
}

// weeklySeries runs on Tuesdays at 18:00 from March 3rd to March 31st 2026.
// With the fixture clock on March 10th at noon, the first session is past.
func weeklySeries(id uint) domain.Event {
	return domain.Event{
		ID:       id,
		Title:    "Weekly yoga",
		Currency: "eur",
		Schedule: domain.Schedule{
			Mode:      domain.ScheduleRecurring,
			StartsAt:  time.Date(2026, time.March, 3, 18, 0, 0, 0, time.UTC),
			EndsAt:    time.Date(2026, time.March, 3, 19, 0, 0, 0, time.UTC),
			Frequency: domain.FrequencyWeekly,
			Interval:  1,
			Until:     timePtr(time.Date(2026, time.March, 31, 18, 0, 0, 0, time.UTC)),
		},
	}
}

func newRegistrationFixture(t *testing.T, events ...domain.Event) *registrationFixture {
	t.Helper()

	birth := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	participants := newFakeParticipants(
		domain.Participant{ID: 1, Name: "Alice", Email: "alice@example.com"},
		domain.Participant{ID: 2, Name: "Bob", Email: "bob@example.com"},
		domain.Participant{ID: 3, Name: "Carol", Email: "carol@example.com"},
		domain.Participant{ID: 4, Name: "Dan", Email: "dan@example.com"},
		domain.Participant{ID: 6, Name: "Tom", Email: "tom@example.com", GuardianID: uintPtr(1), BirthDate: &birth},
	)

	f := &registrationFixture{
		events:    newFakeEvents(events...),
		publisher: &recordingPublisher{},
		payments:  &fakePayments{},
		gateway:   new(MockCheckoutGateway),
		mailer:    new(MockMailer),
		now:       testNow,
	}
	f.regs = newFakeRegistrations(f.events)

	resolver := occurrence.NewResolver(time.UTC, f.clock)
	payments := NewPaymentService(f.payments, participants, f.gateway, f.mailer, "eur", domain.DeliveryImmediate)
	payments.newKey = func() string { return "key-1" }

	f.svc = NewRegistrationService(
		f.events,
		f.regs,
		NewParticipantService(participants),
		NewAgeEligibility(),
		payments,
		f.publisher,
		resolver,
		RegistrationPolicy{AllowOngoingSeries: true, NoteMaxLength: 400},
	)
	f.svc.now = f.clock

	return f
}

func self(id uint) domain.ParticipantIdentity {
	return domain.ParticipantIdentity{MemberID: id}
}

func TestRegistrationService_Register_Idempotent(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, nil, nil))
	ctx := context.Background()
	note := "vegetarian"
	in := RegisterInput{EventID: fixedEventID, ParticipantID: 1, Note: &note}

	first, err := f.svc.Register(ctx, self(1), in)
	require.NoError(t, err)
	require.Equal(t, ResultCreated, first.Kind)
	require.Equal(t, domain.StatusActive, first.Registration.Status)

	second, err := f.svc.Register(ctx, self(1), in)
	require.NoError(t, err)
	assert.Equal(t, ResultUnchanged, second.Kind)
	assert.Equal(t, first.Registration.ID, second.Registration.ID)
	assert.Equal(t, "You are already registered for this event.", second.Message)

	assert.Equal(t, 1, f.regs.liveCount(fixedEventID, 1))
	assert.Equal(t, []domain.EventKind{domain.KindRegistrationCreated}, f.publisher.kinds())
}

func TestRegistrationService_Register_CapacityBoundary(t *testing.T) {
	tests := []struct {
		name          string
		waitlistTotal *int
		want          []domain.RegistrationStatus
		rejectFrom    int
	}{
		{
			name:          "waitlist of one",
			waitlistTotal: intPtr(1),
			want:          []domain.RegistrationStatus{domain.StatusActive, domain.StatusActive, domain.StatusWaitlisted},
			rejectFrom:    4,
		},
		{
			name:       "no waitlist",
			want:       []domain.RegistrationStatus{domain.StatusActive, domain.StatusActive},
			rejectFrom: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, intPtr(2), tc.waitlistTotal))
			ctx := context.Background()

			for i, status := range tc.want {
				id := uint(i + 1)
				res, err := f.svc.Register(ctx, self(id), RegisterInput{EventID: fixedEventID, ParticipantID: id})
				require.NoError(t, err)
				assert.Equal(t, status, res.Registration.Status, "participant %d", id)
			}

			id := uint(tc.rejectFrom)
			_, err := f.svc.Register(ctx, self(id), RegisterInput{EventID: fixedEventID, ParticipantID: id})
			require.ErrorIs(t, err, ErrCapacityRejected)
			assert.Zero(t, f.regs.liveCount(fixedEventID, id))
		})
	}
}

func TestRegistrationService_Register_WaitlistMessage(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, intPtr(1), intPtr(1)))
	ctx := context.Background()

	_, err := f.svc.Register(ctx, self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 1})
	require.NoError(t, err)

	res, err := f.svc.Register(ctx, self(2), RegisterInput{EventID: fixedEventID, ParticipantID: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlisted, res.Registration.Status)
	assert.Equal(t, "The event is full. You have been added to the waitlist.", res.Message)
	require.NotNil(t, res.Capacity.Remaining)
	assert.Equal(t, 0, *res.Capacity.Remaining)
}

func TestRegistrationService_Register_AfterCancellation(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, nil, nil))
	ctx := context.Background()
	in := RegisterInput{EventID: fixedEventID, ParticipantID: 1}

	first, err := f.svc.Register(ctx, self(1), in)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, self(1), fixedEventID, 1)
	require.NoError(t, err)
	assert.Zero(t, f.regs.liveCount(fixedEventID, 1))

	again, err := f.svc.Register(ctx, self(1), in)
	require.NoError(t, err)
	assert.Equal(t, ResultCreated, again.Kind)
	assert.True(t, again.Reregistered)
	assert.Equal(t, first.Registration.ID, again.Registration.ID)
	assert.Equal(t, 1, f.regs.liveCount(fixedEventID, 1))

	history, err := f.regs.FindTransitions(ctx, again.Registration.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.StatusAbsent, history[0].From)
	assert.Equal(t, domain.StatusActive, history[1].From)
	assert.Equal(t, domain.StatusCancelled, history[1].To)
	assert.Equal(t, domain.StatusCancelled, history[2].From)
	assert.Equal(t, domain.StatusActive, history[2].To)

	assert.Equal(t, []domain.EventKind{
		domain.KindRegistrationCreated,
		domain.KindRegistrationCancelled,
		domain.KindRegistrationCreated,
	}, f.publisher.kinds())
}

func TestRegistrationService_Register_PaymentErrorDoesNotBlock(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 1000, nil, nil))
	f.gateway.On("CreateCheckout", mock.Anything, mock.AnythingOfType("domain.CheckoutRequest")).
		Return(domain.Checkout{}, errors.New("gateway unavailable"))

	res, err := f.svc.Register(context.Background(), self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, res.Registration.Status)
	assert.NotZero(t, res.Registration.ID)
	assert.True(t, res.Payment.Required)
	assert.True(t, res.Payment.PaymentError)
	assert.Contains(t, res.Message, "pay on site")

	require.Len(t, f.payments.intents, 1)
	assert.Equal(t, domain.PaymentFailed, f.payments.intents[0].Status)
	f.gateway.AssertExpectations(t)
}

func TestRegistrationService_Register_Deadline(t *testing.T) {
	pastFixed := fixedEvent(pastFixedEventID, 0, nil, nil)
	pastFixed.Schedule.StartsAt = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	withDeadline := weeklySeries(4)
	withDeadline.RegistrationDeadline = timePtr(time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC))

	openDeadline := fixedEvent(5, 0, nil, nil)
	openDeadline.RegistrationDeadline = timePtr(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		eventID uint
		ongoing bool
		wantErr error
	}{
		{name: "ongoing series stays open", eventID: seriesEventID, ongoing: true},
		{name: "ongoing series closed by policy", eventID: seriesEventID, ongoing: false, wantErr: ErrRegistrationClosed},
		{name: "started fixed event", eventID: pastFixedEventID, ongoing: true, wantErr: ErrRegistrationClosed},
		{name: "explicit deadline passed", eventID: 4, ongoing: true, wantErr: ErrRegistrationClosed},
		{name: "explicit deadline ahead", eventID: 5, ongoing: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newRegistrationFixture(t, weeklySeries(seriesEventID), pastFixed, withDeadline, openDeadline)
			f.svc.policy.AllowOngoingSeries = tc.ongoing

			_, err := f.svc.Register(context.Background(), self(1), RegisterInput{EventID: tc.eventID, ParticipantID: 1})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRegistrationService_Register_EndToEnd(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 1000, intPtr(1), intPtr(5)))
	f.gateway.On("CreateCheckout", mock.Anything, mock.AnythingOfType("domain.CheckoutRequest")).
		Return(domain.Checkout{Reference: "cs_test_1", URL: "https://checkout.example.com/cs_test_1"}, nil)
	ctx := context.Background()

	a, err := f.svc.Register(ctx, self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, a.Registration.Status)
	assert.True(t, a.Payment.Required)
	assert.Equal(t, int64(1000), a.Payment.AmountCents)
	assert.Equal(t, "10.00 EUR", a.Payment.AmountLabel)
	assert.Equal(t, "https://checkout.example.com/cs_test_1", a.Payment.CheckoutURL)

	b, err := f.svc.Register(ctx, self(2), RegisterInput{EventID: fixedEventID, ParticipantID: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlisted, b.Registration.Status)
	assert.False(t, b.Payment.Required)

	_, err = f.svc.Cancel(ctx, self(1), fixedEventID, 1)
	require.NoError(t, err)

	stillWaiting, err := f.regs.FindByID(ctx, b.Registration.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlisted, stillWaiting.Status)

	f.gateway.AssertNumberOfCalls(t, "CreateCheckout", 1)
	require.Len(t, f.payments.intents, 1)
	assert.Equal(t, a.Registration.ID, f.payments.intents[0].RegistrationID)
}

func TestRegistrationService_Register_Authorization(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, nil, nil))
	ctx := context.Background()

	_, err := f.svc.Register(ctx, self(2), RegisterInput{EventID: fixedEventID, ParticipantID: 1})
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.svc.Register(ctx, domain.ParticipantIdentity{}, RegisterInput{EventID: fixedEventID, ParticipantID: 1})
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.svc.Register(ctx, self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 99})
	require.ErrorIs(t, err, ErrParticipantNotFound)

	_, err = f.svc.Register(ctx, self(1), RegisterInput{EventID: 42, ParticipantID: 1})
	require.ErrorIs(t, err, ErrEventNotFound)

	res, err := f.svc.Register(ctx, self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 6})
	require.NoError(t, err)
	require.NotNil(t, res.Registration.GuardianID)
	assert.Equal(t, uint(1), *res.Registration.GuardianID)
}

func TestRegistrationService_Register_Ineligible(t *testing.T) {
	adults := fixedEvent(fixedEventID, 0, nil, nil)
	adults.MinAge = intPtr(18)
	f := newRegistrationFixture(t, adults)

	_, err := f.svc.Register(context.Background(), self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 6})
	require.ErrorIs(t, err, ErrIneligible)

	var ineligible *IneligibleError
	require.True(t, errors.As(err, &ineligible))
	assert.Equal(t, []string{"participant must be at least 18 years old"}, ineligible.Reasons)
}

func TestRegistrationService_Register_Selection(t *testing.T) {
	required := weeklySeries(5)
	required.RequireOccurrenceSelection = true

	tests := []struct {
		name      string
		eventID   uint
		selection *assignment.Selection
		want      domain.Assignment
		wantErr   error
	}{
		{
			name:    "omitted selection means all",
			eventID: seriesEventID,
			want:    domain.AllOccurrences(),
		},
		{
			name:      "custom selection is normalised",
			eventID:   seriesEventID,
			selection: &assignment.Selection{IDs: []string{"20260324T180000Z", " 20260317T180000Z", "20260324T180000Z"}},
			want: domain.Assignment{
				Mode:          domain.AssignmentCustom,
				OccurrenceIDs: []string{"20260317T180000Z", "20260324T180000Z"},
			},
		},
		{
			name:      "unknown session",
			eventID:   seriesEventID,
			selection: &assignment.Selection{IDs: []string{"20260318T180000Z"}},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "past session",
			eventID:   seriesEventID,
			selection: &assignment.Selection{IDs: []string{"20260303T180000Z"}},
			wantErr:   ErrInvalidInput,
		},
		{
			name:    "event requires a selection",
			eventID: 5,
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newRegistrationFixture(t, weeklySeries(seriesEventID), required)

			res, err := f.svc.Register(context.Background(), self(1), RegisterInput{
				EventID:       tc.eventID,
				ParticipantID: 1,
				Selection:     tc.selection,
			})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, f.regs.liveCount(tc.eventID, 1))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Registration.Assignment)
		})
	}
}

func TestRegistrationService_Register_UpsertUpdatesExisting(t *testing.T) {
	f := newRegistrationFixture(t, weeklySeries(seriesEventID))
	ctx := context.Background()

	created, err := f.svc.Register(ctx, self(1), RegisterInput{EventID: seriesEventID, ParticipantID: 1})
	require.NoError(t, err)

	updated, err := f.svc.Register(ctx, self(1), RegisterInput{
		EventID:       seriesEventID,
		ParticipantID: 1,
		Selection:     &assignment.Selection{IDs: []string{"20260317T180000Z"}},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, updated.Kind)
	assert.Equal(t, created.Registration.ID, updated.Registration.ID)
	assert.Equal(t, Changes{Assignment: true}, updated.Changes)
	assert.Equal(t, "Your sessions have been updated.", updated.Message)
	assert.Equal(t, []domain.EventKind{domain.KindRegistrationCreated, domain.KindRegistrationUpdated}, f.publisher.kinds())
}

func TestRegistrationService_EmptySelectionDoesNotWidenCustomAssignment(t *testing.T) {
	f := newRegistrationFixture(t, weeklySeries(seriesEventID))
	ctx := context.Background()

	created, err := f.svc.Register(ctx, self(1), RegisterInput{
		EventID:       seriesEventID,
		ParticipantID: 1,
		Selection:     &assignment.Selection{IDs: []string{"20260317T180000Z"}},
	})
	require.NoError(t, err)
	id := created.Registration.ID
	custom := created.Registration.Assignment

	tests := []struct {
		name string
		call func(sel *assignment.Selection) error
	}{
		{
			name: "register on a live registration",
			call: func(sel *assignment.Selection) error {
				_, err := f.svc.Register(ctx, self(1), RegisterInput{EventID: seriesEventID, ParticipantID: 1, Selection: sel})
				return err
			},
		},
		{
			name: "update",
			call: func(sel *assignment.Selection) error {
				_, err := f.svc.Update(ctx, self(1), id, UpdateInput{Selection: sel})
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, sel := range []*assignment.Selection{{IDs: []string{}}, {IDs: []string{"  "}}} {
				err := tc.call(sel)
				require.ErrorIs(t, err, ErrInvalidInput)
			}

			current, err := f.regs.FindByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, custom, current.Assignment)
		})
	}

	widened, err := f.svc.Update(ctx, self(1), id, UpdateInput{Selection: &assignment.Selection{All: true}})
	require.NoError(t, err)
	assert.Equal(t, domain.AllOccurrences(), widened.Registration.Assignment, "an explicit all still widens")

	unchanged, err := f.svc.Update(ctx, self(1), id, UpdateInput{Selection: &assignment.Selection{IDs: []string{}}})
	require.NoError(t, err)
	assert.Equal(t, ResultUnchanged, unchanged.Kind, "an empty selection on an all assignment keeps it")
}

func TestRegistrationService_Update(t *testing.T) {
	f := newRegistrationFixture(t, weeklySeries(seriesEventID))
	ctx := context.Background()

	created, err := f.svc.Register(ctx, self(1), RegisterInput{
		EventID:       seriesEventID,
		ParticipantID: 1,
		Selection:     &assignment.Selection{IDs: []string{"20260310T180000Z", "20260317T180000Z"}},
	})
	require.NoError(t, err)
	id := created.Registration.ID

	note := "arriving late"
	res, err := f.svc.Update(ctx, self(1), id, UpdateInput{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, res.Kind)
	assert.Equal(t, Changes{Note: true}, res.Changes)
	assert.Equal(t, created.Registration.Assignment, res.Registration.Assignment)
	assert.Equal(t, note, res.Registration.Note)

	res, err = f.svc.Update(ctx, self(1), id, UpdateInput{
		Note:      &note,
		Selection: &assignment.Selection{IDs: []string{"20260317T180000Z", "20260310T180000Z"}},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultUnchanged, res.Kind)

	// Two days later the March 10th session is past but still held.
	f.now = time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)

	res, err = f.svc.Update(ctx, self(1), id, UpdateInput{
		Selection: &assignment.Selection{IDs: []string{"20260310T180000Z", "20260324T180000Z"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"20260310T180000Z", "20260324T180000Z"}, res.Registration.Assignment.OccurrenceIDs)

	_, err = f.svc.Update(ctx, self(1), id, UpdateInput{
		Selection: &assignment.Selection{IDs: []string{"20260303T180000Z"}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Update(ctx, self(2), id, UpdateInput{Note: &note})
	require.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.svc.Update(ctx, self(1), 999, UpdateInput{Note: &note})
	require.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestRegistrationService_NoteTooLong(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, nil, nil))
	note := strings.Repeat("é", 401)

	_, err := f.svc.Register(context.Background(), self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 1, Note: &note})
	require.ErrorIs(t, err, ErrInvalidInput)

	ok := strings.Repeat("é", 400)
	_, err = f.svc.Register(context.Background(), self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 1, Note: &ok})
	require.NoError(t, err)
}

func TestRegistrationService_NoteLimitFollowsPolicy(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, nil, nil))
	f.svc.policy.NoteMaxLength = 1000
	ctx := context.Background()

	long := strings.Repeat("x", 600)
	res, err := f.svc.Register(ctx, self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 1, Note: &long})
	require.NoError(t, err)
	assert.Equal(t, long, res.Registration.Note)

	f.svc.policy.NoteMaxLength = 100
	_, err = f.svc.Update(ctx, self(1), res.Registration.ID, UpdateInput{Note: &long})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegistrationService_Cancel(t *testing.T) {
	f := newRegistrationFixture(t, fixedEvent(fixedEventID, 0, nil, nil))
	ctx := context.Background()

	_, err := f.svc.Cancel(ctx, self(1), fixedEventID, 1)
	require.ErrorIs(t, err, ErrRegistrationNotFound)

	_, err = f.svc.Register(ctx, self(1), RegisterInput{EventID: fixedEventID, ParticipantID: 6})
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, self(2), fixedEventID, 6)
	require.ErrorIs(t, err, ErrNotAuthorized)

	res, err := f.svc.Cancel(ctx, self(1), fixedEventID, 6)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, res.Registration.Status)

	_, err = f.svc.Cancel(ctx, self(1), fixedEventID, 6)
	require.ErrorIs(t, err, ErrRegistrationNotFound)

	cancelled, ok := f.publisher.events[1].(domain.RegistrationCancelled)
	require.True(t, ok)
	assert.Equal(t, domain.StatusActive, cancelled.PreviousStatus)
}
