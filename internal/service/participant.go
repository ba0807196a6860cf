package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

type ParticipantRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Participant, error)
	FindDependents(ctx context.Context, guardianID uint) ([]domain.Participant, error)
}

type ParticipantService struct {
	repo ParticipantRepository
}

func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
	}
}

// Authorize loads the participant and checks that identity may act for it:
// either it is the participant, or the participant's guardian.
func (s *ParticipantService) Authorize(ctx context.Context, identity domain.ParticipantIdentity, participantID uint) (domain.Participant, error) {
	if identity.IsZero() {
		return domain.Participant{}, ErrNotAuthorized
	}

	participant, err := s.repo.FindByID(ctx, participantID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if participant.ID == identity.MemberID {
		return participant, nil
	}
	if participant.GuardianID != nil && *participant.GuardianID == identity.MemberID {
		return participant, nil
	}

	return domain.Participant{}, ErrNotAuthorized
}

// Dependents returns the ids of the participants guardianID is responsible for.
func (s *ParticipantService) Dependents(ctx context.Context, guardianID uint) ([]uint, error) {
	dependents, err := s.repo.FindDependents(ctx, guardianID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindDependents -> %w", err)
	}

	ids := make([]uint, len(dependents))
	for i, d := range dependents {
		ids[i] = d.ID
	}

	return ids, nil
}

// Household returns the member first, followed by their dependents.
func (s *ParticipantService) Household(ctx context.Context, identity domain.ParticipantIdentity) ([]domain.Participant, error) {
	if identity.IsZero() {
		return nil, ErrNotAuthorized
	}

	self, err := s.repo.FindByID(ctx, identity.MemberID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	dependents, err := s.repo.FindDependents(ctx, identity.MemberID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindDependents -> %w", err)
	}

	return append([]domain.Participant{self}, dependents...), nil
}
