package domain

import "time"

type DeliveryMode string

const (
	DeliveryImmediate DeliveryMode = "immediate"
	DeliveryDeferred  DeliveryMode = "deferred"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSent    PaymentStatus = "sent"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentIntent struct {
	ID             uint          `json:"id"`
	RegistrationID uint          `json:"registration_id"`
	AmountCents    int64         `json:"amount_cents"`
	Currency       string        `json:"currency"`
	CheckoutURL    string        `json:"checkout_url"`
	Delivery       DeliveryMode  `json:"delivery"`
	Status         PaymentStatus `json:"status"`
	IdempotencyKey string        `json:"-"`
	FailureReason  string        `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type CheckoutRequest struct {
	RegistrationID  uint
	Description     string
	Currency        string
	UnitAmountCents int64
	Quantity        int64
	CustomerEmail   string
	IdempotencyKey  string
	Metadata        map[string]string
}

type Checkout struct {
	Reference string
	URL       string
}

// PaymentOutcome is the result of payment orchestration. PaymentError and
// EmailError flag non-fatal failures: the registration stays committed.
type PaymentOutcome struct {
	Required        bool         `json:"required"`
	IntentID        uint         `json:"intent_id,omitempty"`
	CheckoutURL     string       `json:"checkout_url,omitempty"`
	AmountCents     int64        `json:"amount_cents,omitempty"`
	Currency        string       `json:"currency,omitempty"`
	AmountLabel     string       `json:"amount_label,omitempty"`
	OccurrenceCount int          `json:"occurrence_count,omitempty"`
	Delivery        DeliveryMode `json:"delivery,omitempty"`
	Sent            bool         `json:"sent"`
	PaymentError    bool         `json:"payment_error"`
	EmailError      bool         `json:"payment_email_error"`
}

type Recipient struct {
	Name  string
	Email string
}

type Message struct {
	Subject string
	Body    string
}
