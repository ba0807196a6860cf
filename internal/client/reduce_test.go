package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

func loadedState() State {
	return Reduce(NewState(3), SnapshotLoaded{
		Participants: []ParticipantOption{
			{ID: 1, Name: "Member", Eligible: true, Status: domain.StatusActive},
			{ID: 2, Name: "Too young", Eligible: false, Reasons: []string{"participant must be at least 8 years old"}},
			{ID: 3, Name: "Lou", Eligible: true},
			{ID: 4, Name: "Sam", Eligible: true, Status: domain.StatusCancelled},
		},
		Occurrences: []OccurrenceOption{
			{ID: "o1", Label: "Tue 03 Mar 2026 18:00", Past: true},
			{ID: "o2", Label: "Tue 17 Mar 2026 18:00"},
			{ID: "o3", Label: "Tue 24 Mar 2026 18:00"},
		},
		RequireOccurrenceSelection: true,
	})
}

func TestReduce_SnapshotPicksFirstSelectable(t *testing.T) {
	s := loadedState()

	assert.Equal(t, uint(3), s.SelectedParticipant)
	assert.True(t, s.RequireOccurrenceSelection)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestReduce_ParticipantSelection(t *testing.T) {
	s := loadedState()

	tests := []struct {
		name string
		id   uint
		want uint
	}{
		{name: "selectable", id: 4, want: 4},
		{name: "already registered", id: 1, want: 3},
		{name: "ineligible", id: 2, want: 3},
		{name: "unknown", id: 99, want: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Reduce(s, ParticipantSelected{ParticipantID: tc.id})
			assert.Equal(t, tc.want, got.SelectedParticipant)
		})
	}
}

func TestReduce_OccurrenceToggle(t *testing.T) {
	s := loadedState()

	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o3"})
	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o2"})
	assert.Equal(t, []string{"o2", "o3"}, s.SelectedOccurrences)

	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o1"})
	assert.Equal(t, []string{"o2", "o3"}, s.SelectedOccurrences, "past sessions are never selectable")

	s = Reduce(s, OccurrenceToggled{OccurrenceID: "nope"})
	assert.Equal(t, []string{"o2", "o3"}, s.SelectedOccurrences)

	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o2"})
	assert.Equal(t, []string{"o3"}, s.SelectedOccurrences)
	assert.True(t, s.IsSelected("o3"))
	assert.False(t, s.IsSelected("o2"))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := Reduce(loadedState(), OccurrenceToggled{OccurrenceID: "o2"})
	selected := append([]string(nil), before.SelectedOccurrences...)
	participants := append([]ParticipantOption(nil), before.Participants...)

	_ = Reduce(before, OccurrenceToggled{OccurrenceID: "o3"})
	_ = Reduce(before, OccurrenceToggled{OccurrenceID: "o2"})
	_ = Reduce(before, SubmitSucceeded{ParticipantID: 3, Status: domain.StatusActive})

	assert.Equal(t, selected, before.SelectedOccurrences)
	assert.Equal(t, participants, before.Participants)
}

func TestReduce_SnapshotDropsSessionsThatBecamePast(t *testing.T) {
	s := loadedState()
	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o2"})
	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o3"})

	s = Reduce(s, SnapshotLoaded{
		Participants: s.Participants,
		Occurrences: []OccurrenceOption{
			{ID: "o2", Past: true},
			{ID: "o3"},
		},
	})

	assert.Equal(t, []string{"o3"}, s.SelectedOccurrences)
}

func TestReduce_SubmitSucceeded(t *testing.T) {
	s := loadedState()
	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o2"})
	s = Reduce(s, NoteChanged{Note: "allergic to nuts"})
	s = Reduce(s, ConfirmationChanged{Confirmed: true})
	s = Reduce(s, SubmitStarted{})
	require.Equal(t, PhaseSubmitting, s.Phase)

	payment := &Payment{CheckoutURL: "https://pay.example/cs_1", AmountLabel: "10.00 EUR", OccurrenceCount: 1}
	s = Reduce(s, SubmitSucceeded{ParticipantID: 3, Status: domain.StatusActive, Message: "Your registration is confirmed.", Payment: payment})

	assert.Equal(t, PhaseSuccess, s.Phase)
	assert.Equal(t, "Your registration is confirmed.", s.Message)
	p, _ := s.Participant(3)
	assert.False(t, p.Selectable(), "registered participant is disabled")
	assert.Equal(t, uint(4), s.SelectedParticipant)
	assert.Empty(t, s.SelectedOccurrences)
	assert.Empty(t, s.Note)
	assert.False(t, s.Confirmed)
	assert.True(t, s.PaymentModalOpen)
	assert.Equal(t, payment, s.Payment)

	s = Reduce(s, PaymentDismissed{})
	assert.False(t, s.PaymentModalOpen)

	s = Reduce(s, Acknowledged{})
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Empty(t, s.Message)
}

func TestReduce_SubmitSucceededWithoutCheckout(t *testing.T) {
	s := Reduce(loadedState(), SubmitSucceeded{
		ParticipantID: 3,
		Status:        domain.StatusActive,
		Payment:       &Payment{AmountLabel: "10.00 EUR", Delivery: domain.DeliveryDeferred, Sent: true},
	})

	assert.False(t, s.PaymentModalOpen)
	require.NotNil(t, s.Payment)
	assert.True(t, s.Payment.Sent)
}

func TestReduce_SubmitFailedKeepsInput(t *testing.T) {
	s := loadedState()
	s = Reduce(s, OccurrenceToggled{OccurrenceID: "o2"})
	s = Reduce(s, NoteChanged{Note: "arrives late"})
	s = Reduce(s, SubmitStarted{})

	t.Run("server message", func(t *testing.T) {
		got := Reduce(s, SubmitFailed{Message: "event is full", Code: "capacity_rejected"})

		assert.Equal(t, PhaseError, got.Phase)
		assert.Equal(t, "event is full", got.Message)
		assert.Equal(t, "arrives late", got.Note)
		assert.Equal(t, []string{"o2"}, got.SelectedOccurrences)
		assert.Equal(t, uint(3), got.SelectedParticipant)
	})

	t.Run("no message", func(t *testing.T) {
		got := Reduce(s, SubmitFailed{})

		assert.Equal(t, genericFailureMessage, got.Message)
	})

	t.Run("already registered falls back", func(t *testing.T) {
		got := Reduce(s, SubmitFailed{Message: "You are already registered for this event.", Code: "already_registered"})

		p, _ := got.Participant(3)
		assert.False(t, p.Selectable())
		assert.Equal(t, uint(4), got.SelectedParticipant)
		assert.Equal(t, "arrives late", got.Note)
	})
}

func TestReduce_NobodyLeft(t *testing.T) {
	s := Reduce(NewState(3), SnapshotLoaded{
		Participants: []ParticipantOption{{ID: 1, Eligible: true}},
	})
	require.Equal(t, uint(1), s.SelectedParticipant)

	s = Reduce(s, SubmitSucceeded{ParticipantID: 1, Status: domain.StatusWaitlisted})

	assert.Zero(t, s.SelectedParticipant)
}

func TestReduce_CancelSucceeded(t *testing.T) {
	s := Reduce(NewState(3), SnapshotLoaded{
		Participants: []ParticipantOption{{ID: 1, Eligible: true, Status: domain.StatusActive}},
	})
	require.Zero(t, s.SelectedParticipant)

	s = Reduce(s, CancelSucceeded{ParticipantID: 1, Message: "Your registration has been cancelled."})

	assert.Equal(t, uint(1), s.SelectedParticipant)
	assert.Equal(t, "Your registration has been cancelled.", s.Message)

	s = Reduce(s, CancelFailed{})
	assert.Equal(t, genericFailureMessage, s.Message)
}

func TestCheckSubmit(t *testing.T) {
	ready := loadedState()
	ready = Reduce(ready, OccurrenceToggled{OccurrenceID: "o2"})
	ready = Reduce(ready, ConfirmationChanged{Confirmed: true})

	tests := []struct {
		name  string
		state func() State
		want  Guard
	}{
		{name: "ready", state: func() State { return ready }},
		{name: "in flight", state: func() State { return Reduce(ready, SubmitStarted{}) }, want: GuardInFlight},
		{name: "no participant", state: func() State {
			s := ready
			s.SelectedParticipant = 0
			return s
		}, want: GuardNoParticipant},
		{name: "participant not selectable", state: func() State {
			s := ready
			s.SelectedParticipant = 2
			return s
		}, want: GuardNotSelectable},
		{name: "no session", state: func() State { return Reduce(ready, OccurrenceToggled{OccurrenceID: "o2"}) }, want: GuardOccurrenceRequired},
		{name: "not confirmed", state: func() State { return Reduce(ready, ConfirmationChanged{Confirmed: false}) }, want: GuardNotConfirmed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSubmit(tc.state())
			if tc.want == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tc.want, err.Guard)
			assert.ErrorIs(t, err, ErrGuard)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestReduce_SubmitBlocked(t *testing.T) {
	s := Reduce(loadedState(), SubmitBlocked{Guard: GuardNotConfirmed})

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, GuardNotConfirmed, s.Guard)
	assert.Equal(t, "Please confirm your registration before sending it.", s.Message)
}
