package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const registrationKeyIndex = "uni_registrations_event_participant"

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("participant already registered for this event")
)

type Registration struct {
	ID             uint     `gorm:"primaryKey"`
	EventID        uint     `gorm:"not null;uniqueIndex:uni_registrations_event_participant"`
	ParticipantID  uint     `gorm:"not null;uniqueIndex:uni_registrations_event_participant"`
	GuardianID     *uint    `gorm:"index"`
	Status         string   `gorm:"not null;index"` // "active", "waitlisted" or "cancelled"
	Note           string   `gorm:"size:400"`
	AssignmentMode string   `gorm:"not null;default:all"`
	OccurrenceIDs  []string `gorm:"serializer:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RegistrationTransition is the append-only status history of a
// registration. Rows are never updated or deleted.
type RegistrationTransition struct {
	ID             uint   `gorm:"primaryKey"`
	RegistrationID uint   `gorm:"not null;index"`
	FromStatus     string `gorm:"not null"`
	ToStatus       string `gorm:"not null"`
	CreatedAt      time.Time
}

// MutationFunc receives the locked event, the registration currently stored
// under the (event, participant) key and the live counts.
type MutationFunc func(event Event, existing *Registration, active, waitlisted int) (next Registration, write bool, err error)

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

// FindLive lists the active and waitlisted registrations of the given
// participants. A zero eventID matches every event.
func (d *RegistrationDAO) FindLive(ctx context.Context, eventID uint, participantIDs []uint) ([]Registration, error) {
	var registrations []Registration

	query := d.db.WithContext(ctx).
		Where("participant_id IN ?", participantIDs).
		Where("status IN ?", []string{"active", "waitlisted"})
	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Order("event_id, created_at").Find(&registrations).Error; err != nil {
		return nil, err
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindTransitions(ctx context.Context, registrationID uint) ([]RegistrationTransition, error) {
	var transitions []RegistrationTransition

	result := d.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Order("id").
		Find(&transitions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transitions, nil
}

type statusCount struct {
	Status string
	Total  int
}

// Mutate runs fn inside a transaction holding a row lock on the event, so two
// requests racing for the last seat are serialised and each sees the counts
// left by the other.
func (d *RegistrationDAO) Mutate(ctx context.Context, eventID, participantID uint, fn MutationFunc) (Registration, error) {
	var result Registration

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var (
			found    Registration
			existing *Registration
		)
		err := tx.Where("event_id = ? AND participant_id = ?", eventID, participantID).Take(&found).Error
		switch {
		case err == nil:
			existing = &found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var counts []statusCount
		if err := tx.Model(&Registration{}).
			Select("status, count(*) as total").
			Where("event_id = ? AND status IN ?", eventID, []string{"active", "waitlisted"}).
			Group("status").
			Scan(&counts).Error; err != nil {
			return err
		}

		var active, waitlisted int
		for _, c := range counts {
			switch c.Status {
			case "active":
				active = c.Total
			case "waitlisted":
				waitlisted = c.Total
			}
		}

		next, write, err := fn(event, existing, active, waitlisted)
		if err != nil {
			return err
		}
		if !write {
			result = next
			return nil
		}

		from := "absent"
		next.EventID, next.ParticipantID = eventID, participantID
		if existing != nil {
			from = existing.Status
			next.ID = existing.ID
			next.CreatedAt = existing.CreatedAt
		}

		if err := tx.Save(&next).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				pgErr.ConstraintName == registrationKeyIndex {
				return ErrAlreadyRegistered
			}
			return err
		}

		if from != next.Status {
			transition := RegistrationTransition{
				RegistrationID: next.ID,
				FromStatus:     from,
				ToStatus:       next.Status,
			}
			if err := tx.Create(&transition).Error; err != nil {
				return err
			}
		}

		result = next

		return nil
	})
	if err != nil {
		return Registration{}, err
	}

	return result, nil
}
