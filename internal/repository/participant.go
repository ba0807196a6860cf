package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/repository/dao"
)

var (
	ErrParticipantEmailExists = dao.ErrParticipantEmailExists
	ErrParticipantNotFound    = dao.ErrParticipantNotFound
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindByID(ctx context.Context, id uint) (dao.Participant, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Participant, error)
	FindDependents(ctx context.Context, guardianID uint) ([]dao.Participant, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, dao.Participant{
		Name:       participant.Name,
		Email:      participant.Email,
		Role:       participant.Role,
		BirthDate:  participant.BirthDate,
		GuardianID: participant.GuardianID,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Participant, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) FindDependents(ctx context.Context, guardianID uint) ([]domain.Participant, error) {
	found, err := r.dao.FindDependents(ctx, guardianID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDependents -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Role:       p.Role,
		BirthDate:  p.BirthDate,
		GuardianID: p.GuardianID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *ParticipantRepository) daosToDomain(participants []dao.Participant) []domain.Participant {
	result := make([]domain.Participant, len(participants))
	for i, p := range participants {
		result[i] = r.daoToDomain(p)
	}

	return result
}
