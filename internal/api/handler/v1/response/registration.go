package response

import (
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

type PaymentSummary struct {
	CheckoutURL     string              `json:"checkout_url,omitempty"`
	AmountLabel     string              `json:"amount_label"`
	AmountCents     int64               `json:"amount_cents"`
	Currency        string              `json:"currency"`
	OccurrenceCount int                 `json:"occurrence_count"`
	Delivery        domain.DeliveryMode `json:"delivery"`
	Sent            bool                `json:"sent"`
}

type RegisterResponse struct {
	RegistrationID    uint            `json:"registration_id"`
	Disposition       string          `json:"disposition"`
	Message           string          `json:"message"`
	Reregistered      bool            `json:"reregistered"`
	Remaining         *int            `json:"remaining"`
	WaitlistRemaining *int            `json:"waitlist_remaining"`
	Payment           *PaymentSummary `json:"payment,omitempty"`
	PaymentError      bool            `json:"payment_error"`
	PaymentEmailError bool            `json:"payment_email_error"`
}

type Updated struct {
	Assignments bool `json:"assignments"`
	Note        bool `json:"note"`
}

type UpdateResponse struct {
	RegistrationID uint                      `json:"registration_id"`
	Status         domain.RegistrationStatus `json:"status"`
	Assignments    domain.Assignment         `json:"assignments"`
	Note           string                    `json:"note"`
	Updated        Updated                   `json:"updated"`
	Message        string                    `json:"message"`
}

type UnregisterResponse struct {
	Message string `json:"message"`
}

type ReservationsResponse struct {
	Reservations []domain.ReservationView `json:"reservations"`
}

type OccurrencesResponse struct {
	EventID                    uint                `json:"event_id"`
	RequireOccurrenceSelection bool                `json:"require_occurrence_selection"`
	Occurrences                []domain.Occurrence `json:"occurrences"`
}

type ParticipantsResponse struct {
	Participants []domain.Candidate `json:"participants"`
}

type HistoryResponse struct {
	Transitions []domain.Transition `json:"transitions"`
}
