package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type PaymentIntent struct {
	ID             uint   `gorm:"primaryKey"`
	RegistrationID uint   `gorm:"not null;index"`
	AmountCents    int64  `gorm:"not null"`
	Currency       string `gorm:"not null"`
	CheckoutURL    string
	Delivery       string `gorm:"not null"` // "immediate" or "deferred"
	Status         string `gorm:"not null"` // "pending", "sent" or "failed"
	IdempotencyKey string `gorm:"uniqueIndex;not null"`
	FailureReason  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, intent PaymentIntent) (PaymentIntent, error) {
	if err := d.db.WithContext(ctx).Create(&intent).Error; err != nil {
		return PaymentIntent{}, err
	}

	return intent, nil
}

func (d *PaymentDAO) UpdateStatus(ctx context.Context, id uint, status, failureReason string) error {
	return d.db.WithContext(ctx).
		Model(&PaymentIntent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"failure_reason": failureReason,
		}).Error
}

func (d *PaymentDAO) FindByRegistrationID(ctx context.Context, registrationID uint) ([]PaymentIntent, error) {
	var intents []PaymentIntent

	result := d.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Order("created_at").
		Find(&intents)
	if result.Error != nil {
		return nil, result.Error
	}

	return intents, nil
}
