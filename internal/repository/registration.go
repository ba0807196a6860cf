package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
)

type RegistrationDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindLive(ctx context.Context, eventID uint, participantIDs []uint) ([]dao.Registration, error)
	FindTransitions(ctx context.Context, registrationID uint) ([]dao.RegistrationTransition, error)
	Mutate(ctx context.Context, eventID, participantID uint, fn dao.MutationFunc) (dao.Registration, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return registrationDaoToDomain(found), nil
}

func (r *RegistrationRepository) FindLive(ctx context.Context, eventID uint, participantIDs []uint) ([]domain.Registration, error) {
	if len(participantIDs) == 0 {
		return []domain.Registration{}, nil
	}

	found, err := r.dao.FindLive(ctx, eventID, participantIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindLive -> %w", err)
	}

	registrations := make([]domain.Registration, len(found))
	for i, reg := range found {
		registrations[i] = registrationDaoToDomain(reg)
	}

	return registrations, nil
}

func (r *RegistrationRepository) FindTransitions(ctx context.Context, registrationID uint) ([]domain.Transition, error) {
	found, err := r.dao.FindTransitions(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTransitions -> %w", err)
	}

	transitions := make([]domain.Transition, len(found))
	for i, t := range found {
		transitions[i] = domain.Transition{
			RegistrationID: t.RegistrationID,
			From:           domain.RegistrationStatus(t.FromStatus),
			To:             domain.RegistrationStatus(t.ToStatus),
			At:             t.CreatedAt,
		}
	}

	return transitions, nil
}

// Mutate hands the locked state of the (event, participant) key to fn and
// persists what it returns.
func (r *RegistrationRepository) Mutate(ctx context.Context, eventID, participantID uint, fn domain.Mutation) (domain.Registration, error) {
	saved, err := r.dao.Mutate(ctx, eventID, participantID, func(event dao.Event, existing *dao.Registration, active, waitlisted int) (dao.Registration, bool, error) {
		state := domain.RegistrationState{
			Event:  eventDaoToDomain(event),
			Counts: domain.Counts{Active: active, Waitlisted: waitlisted},
		}
		if existing != nil {
			current := registrationDaoToDomain(*existing)
			state.Existing = &current
		}

		next, write, err := fn(state)
		if err != nil {
			return dao.Registration{}, false, err
		}

		return registrationDomainToDao(next), write, nil
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Mutate -> %w", err)
	}

	return registrationDaoToDomain(saved), nil
}

func registrationDomainToDao(reg domain.Registration) dao.Registration {
	ids := reg.Assignment.OccurrenceIDs
	if ids == nil {
		ids = []string{}
	}

	return dao.Registration{
		ID:             reg.ID,
		EventID:        reg.EventID,
		ParticipantID:  reg.ParticipantID,
		GuardianID:     reg.GuardianID,
		Status:         string(reg.Status),
		Note:           reg.Note,
		AssignmentMode: string(reg.Assignment.Mode),
		OccurrenceIDs:  ids,
		CreatedAt:      reg.CreatedAt,
		UpdatedAt:      reg.UpdatedAt,
	}
}

func registrationDaoToDomain(reg dao.Registration) domain.Registration {
	mode := domain.AssignmentMode(reg.AssignmentMode)
	if mode == "" {
		mode = domain.AssignmentAll
	}
	ids := reg.OccurrenceIDs
	if ids == nil {
		ids = []string{}
	}

	return domain.Registration{
		ID:            reg.ID,
		EventID:       reg.EventID,
		ParticipantID: reg.ParticipantID,
		GuardianID:    reg.GuardianID,
		Status:        domain.RegistrationStatus(reg.Status),
		Note:          reg.Note,
		Assignment: domain.Assignment{
			Mode:          mode,
			OccurrenceIDs: ids,
		},
		CreatedAt: reg.CreatedAt,
		UpdatedAt: reg.UpdatedAt,
	}
}
