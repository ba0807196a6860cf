package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrParticipantEmailExists = errors.New("participant already exists")
	ErrParticipantNotFound    = errors.New("participant not found")
)

type Participant struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"unique;not null"`
	Role       string `gorm:"not null;default:member"`
	BirthDate  *time.Time
	GuardianID *uint `gorm:"index"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_participants_email"`) {
			return Participant{}, ErrParticipantEmailExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByID(ctx context.Context, id uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByIDs(ctx context.Context, ids []uint) ([]Participant, error) {
	var participants []Participant

	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&participants).Error; err != nil {
		return nil, err
	}

	return participants, nil
}

func (d *ParticipantDAO) FindDependents(ctx context.Context, guardianID uint) ([]Participant, error) {
	var dependents []Participant

	result := d.db.WithContext(ctx).
		Where("guardian_id = ?", guardianID).
		Order("id").
		Find(&dependents)
	if result.Error != nil {
		return nil, result.Error
	}

	return dependents, nil
}
