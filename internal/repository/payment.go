package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/repository/dao"
)

type PaymentDAO interface {
	Insert(ctx context.Context, intent dao.PaymentIntent) (dao.PaymentIntent, error)
	UpdateStatus(ctx context.Context, id uint, status, failureReason string) error
	FindByRegistrationID(ctx context.Context, registrationID uint) ([]dao.PaymentIntent, error)
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, intent domain.PaymentIntent) (domain.PaymentIntent, error) {
	created, err := r.dao.Insert(ctx, dao.PaymentIntent{
		RegistrationID: intent.RegistrationID,
		AmountCents:    intent.AmountCents,
		Currency:       intent.Currency,
		CheckoutURL:    intent.CheckoutURL,
		Delivery:       string(intent.Delivery),
		Status:         string(intent.Status),
		IdempotencyKey: intent.IdempotencyKey,
		FailureReason:  intent.FailureReason,
	})
	if err != nil {
		return domain.PaymentIntent{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uint, status domain.PaymentStatus, failureReason string) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status), failureReason); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *PaymentRepository) FindByRegistrationID(ctx context.Context, registrationID uint) ([]domain.PaymentIntent, error) {
	found, err := r.dao.FindByRegistrationID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRegistrationID -> %w", err)
	}

	intents := make([]domain.PaymentIntent, len(found))
	for i, intent := range found {
		intents[i] = r.daoToDomain(intent)
	}

	return intents, nil
}

func (r *PaymentRepository) daoToDomain(p dao.PaymentIntent) domain.PaymentIntent {
	return domain.PaymentIntent{
		ID:             p.ID,
		RegistrationID: p.RegistrationID,
		AmountCents:    p.AmountCents,
		Currency:       p.Currency,
		CheckoutURL:    p.CheckoutURL,
		Delivery:       domain.DeliveryMode(p.Delivery),
		Status:         domain.PaymentStatus(p.Status),
		IdempotencyKey: p.IdempotencyKey,
		FailureReason:  p.FailureReason,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
