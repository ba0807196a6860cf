package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/occurrence"
	"github.com/vietanh2810/occurrence-registration-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

// Create refuses schedules the occurrence resolver could not expand in full.
func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	if err := occurrence.ValidateSchedule(event.Schedule); err != nil {
		return domain.Event{}, fmt.Errorf("occurrence.ValidateSchedule -> %w", err)
	}

	created, err := r.dao.Insert(ctx, eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Event, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = eventDaoToDomain(e)
	}

	return events, nil
}

func eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                         e.ID,
		Title:                      e.Title,
		PriceCents:                 e.PriceCents,
		Currency:                   e.Currency,
		ScheduleMode:               string(e.Schedule.Mode),
		StartsAt:                   e.Schedule.StartsAt,
		EndsAt:                     e.Schedule.EndsAt,
		Frequency:                  string(e.Schedule.Frequency),
		Interval:                   e.Schedule.Interval,
		Until:                      e.Schedule.Until,
		OccurrenceCount:            e.Schedule.Count,
		CapacityTotal:              e.CapacityTotal,
		WaitlistTotal:              e.WaitlistTotal,
		RegistrationDeadline:       e.RegistrationDeadline,
		RequireOccurrenceSelection: e.RequireOccurrenceSelection,
		MinAge:                     e.MinAge,
		MaxAge:                     e.MaxAge,
		CreatedAt:                  e.CreatedAt,
		UpdatedAt:                  e.UpdatedAt,
	}
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:         e.ID,
		Title:      e.Title,
		PriceCents: e.PriceCents,
		Currency:   e.Currency,
		Schedule: domain.Schedule{
			Mode:      domain.ScheduleMode(e.ScheduleMode),
			StartsAt:  e.StartsAt,
			EndsAt:    e.EndsAt,
			Frequency: domain.Frequency(e.Frequency),
			Interval:  e.Interval,
			Until:     e.Until,
			Count:     e.OccurrenceCount,
		},
		CapacityTotal:              e.CapacityTotal,
		WaitlistTotal:              e.WaitlistTotal,
		RegistrationDeadline:       e.RegistrationDeadline,
		RequireOccurrenceSelection: e.RequireOccurrenceSelection,
		MinAge:                     e.MinAge,
		MaxAge:                     e.MaxAge,
		CreatedAt:                  e.CreatedAt,
		UpdatedAt:                  e.UpdatedAt,
	}
}
