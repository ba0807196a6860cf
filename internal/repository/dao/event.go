package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID                         uint   `gorm:"primaryKey"`
	Title                      string `gorm:"not null"`
	PriceCents                 int64  `gorm:"not null;default:0"`
	Currency                   string
	ScheduleMode               string    `gorm:"not null"` // "fixed" or "recurring"
	StartsAt                   time.Time `gorm:"not null"`
	EndsAt                     time.Time
	Frequency                  string
	Interval                   int `gorm:"not null;default:1"`
	Until                      *time.Time
	OccurrenceCount            *int
	CapacityTotal              *int
	WaitlistTotal              *int
	RegistrationDeadline       *time.Time
	RequireOccurrenceSelection bool `gorm:"not null;default:false"`
	MinAge                     *int
	MaxAge                     *int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	if err := d.db.WithContext(ctx).Create(&event).Error; err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByIDs(ctx context.Context, ids []uint) ([]Event, error) {
	var events []Event

	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
