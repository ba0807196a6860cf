package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/occurrence-registration-api/internal/assignment"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, intent domain.PaymentIntent) (domain.PaymentIntent, error)
	UpdateStatus(ctx context.Context, id uint, status domain.PaymentStatus, failureReason string) error
}

type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (domain.Checkout, error)
}

type Mailer interface {
	Send(ctx context.Context, to domain.Recipient, msg domain.Message) error
}

type PaymentService struct {
	repo            PaymentRepository
	participants    ParticipantRepository
	gateway         CheckoutGateway
	mailer          Mailer
	defaultCurrency string
	defaultDelivery domain.DeliveryMode
	newKey          func() string
}

func NewPaymentService(
	repo PaymentRepository,
	participants ParticipantRepository,
	gateway CheckoutGateway,
	mailer Mailer,
	defaultCurrency string,
	defaultDelivery domain.DeliveryMode,
) *PaymentService {
	if defaultDelivery == "" {
		defaultDelivery = domain.DeliveryImmediate
	}

	return &PaymentService{
		repo:            repo,
		participants:    participants,
		gateway:         gateway,
		mailer:          mailer,
		defaultCurrency: defaultCurrency,
		defaultDelivery: defaultDelivery,
		newKey:          uuid.NewString,
	}
}

// Orchestrate starts the payment of an active registration to a paid event.
// It never fails: gateway and mail problems are reported through the
// PaymentError and EmailError flags of the outcome, the registration itself
// is already committed.
func (s *PaymentService) Orchestrate(
	ctx context.Context,
	registration domain.Registration,
	event domain.Event,
	participant domain.Participant,
	delivery domain.DeliveryMode,
) domain.PaymentOutcome {
	if !event.IsPaid() || registration.Status != domain.StatusActive {
		return domain.PaymentOutcome{}
	}
	if delivery == "" {
		delivery = s.defaultDelivery
	}

	currency := event.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	count := assignment.OccurrenceCount(registration.Assignment)
	amount := event.PriceCents * int64(count)

	outcome := domain.PaymentOutcome{
		Required:        true,
		AmountCents:     amount,
		Currency:        strings.ToUpper(currency),
		AmountLabel:     FormatAmount(amount, currency),
		OccurrenceCount: count,
		Delivery:        delivery,
	}

	key := s.newKey()
	logger := zap.L().With(zap.Uint("registration_id", registration.ID), zap.String("idempotency_key", key))

	intent := domain.PaymentIntent{
		RegistrationID: registration.ID,
		AmountCents:    amount,
		Currency:       outcome.Currency,
		Delivery:       delivery,
		Status:         domain.PaymentPending,
		IdempotencyKey: key,
	}

	checkout, err := s.gateway.CreateCheckout(ctx, domain.CheckoutRequest{
		RegistrationID:  registration.ID,
		Description:     event.Title,
		Currency:        strings.ToLower(currency),
		UnitAmountCents: event.PriceCents,
		Quantity:        int64(count),
		CustomerEmail:   participant.Email,
		IdempotencyKey:  key,
		Metadata: map[string]string{
			"registration_id": strconv.FormatUint(uint64(registration.ID), 10),
			"event_id":        strconv.FormatUint(uint64(event.ID), 10),
			"participant_id":  strconv.FormatUint(uint64(participant.ID), 10),
		},
	})
	if err != nil {
		logger.Warn("failed to create checkout", zap.Error(err))
		outcome.PaymentError = true

		intent.Status = domain.PaymentFailed
		intent.FailureReason = err.Error()
		s.persist(ctx, logger, intent)

		return outcome
	}

	intent.CheckoutURL = checkout.URL
	saved := s.persist(ctx, logger, intent)
	outcome.IntentID = saved.ID

	if delivery == domain.DeliveryImmediate {
		outcome.CheckoutURL = checkout.URL
		return outcome
	}

	recipient := s.recipient(ctx, participant)
	err = s.mailer.Send(ctx, recipient, paymentMessage(event, participant, registration.Assignment, outcome, checkout.URL))

	status, reason := domain.PaymentSent, ""
	if err != nil {
		logger.Warn("failed to send payment email", zap.String("to", recipient.Email), zap.Error(err))
		outcome.EmailError = true
		status, reason = domain.PaymentFailed, err.Error()
	} else {
		outcome.Sent = true
	}

	if saved.ID != 0 {
		if err := s.repo.UpdateStatus(ctx, saved.ID, status, reason); err != nil {
			logger.Warn("failed to update payment intent", zap.Error(err))
		}
	}

	return outcome
}

func (s *PaymentService) persist(ctx context.Context, logger *zap.Logger, intent domain.PaymentIntent) domain.PaymentIntent {
	saved, err := s.repo.Create(ctx, intent)
	if err != nil {
		logger.Warn("failed to persist payment intent", zap.Error(err))
		return intent
	}

	return saved
}

// recipient is the guardian when there is one, the participant otherwise.
func (s *PaymentService) recipient(ctx context.Context, participant domain.Participant) domain.Recipient {
	if participant.GuardianID != nil {
		guardian, err := s.participants.FindByID(ctx, *participant.GuardianID)
		if err == nil {
			return domain.Recipient{Name: guardian.Name, Email: guardian.Email}
		}

		zap.L().Warn("failed to load guardian, mailing participant",
			zap.Uint("participant_id", participant.ID),
			zap.Error(err),
		)
	}

	return domain.Recipient{Name: participant.Name, Email: participant.Email}
}

func paymentMessage(event domain.Event, participant domain.Participant, a domain.Assignment, outcome domain.PaymentOutcome, url string) domain.Message {
	sessions := "all sessions"
	if a.Mode == domain.AssignmentCustom {
		sessions = fmt.Sprintf("%d session(s)", outcome.OccurrenceCount)
	}

	var body strings.Builder
	body.WriteString("Hello,\n\n")
	fmt.Fprintf(&body, "The registration of %s to %s (%s) is confirmed.\n", participant.Name, event.Title, sessions)
	fmt.Fprintf(&body, "The amount due is %s. You can pay online at:\n\n%s\n", outcome.AmountLabel, url)

	return domain.Message{
		Subject: "Payment for " + event.Title,
		Body:    body.String(),
	}
}

// FormatAmount renders minor units as "10.00 EUR".
func FormatAmount(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}

	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, strings.ToUpper(currency))
}
