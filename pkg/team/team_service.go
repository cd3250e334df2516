package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrInvalidBudget = errors.New("team budget must be positive")
)

type TeamService interface {
	GetAll(ctx context.Context) ([]Team, error)
	Get(ctx context.Context, uid string) (Team, error)
	Create(ctx context.Context, team Team) (Team, error)
	Update(ctx context.Context, team Team) (Team, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type TeamServiceImpl struct {
	repo TeamRepo
}

func NewTeamServiceImpl(repo TeamRepo) *TeamServiceImpl {
	return &TeamServiceImpl{repo: repo}
}

func (s *TeamServiceImpl) GetAll(ctx context.Context) ([]Team, error) {
	return s.repo.GetAll(ctx)
}

func (s *TeamServiceImpl) Get(ctx context.Context, uid string) (Team, error) {
	found, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return Team{}, err
	}
	if found == nil {
		return Team{}, ErrTeamNotFound
	}
	return *found, nil
}

func (s *TeamServiceImpl) Create(ctx context.Context, team Team) (Team, error) {
	if team.Budget <= 0 {
		return Team{}, ErrInvalidBudget
	}
	team.Uid = uuid.NewString()
	team.AlertFlags = AlertFlags{}

	id, err := s.repo.Store(ctx, team)
	if err != nil {
		return Team{}, err
	}
	team.ID = id

	return team, nil
}

func (s *TeamServiceImpl) Update(ctx context.Context, team Team) (Team, error) {
	if team.Budget <= 0 {
		return Team{}, ErrInvalidBudget
	}
	existing, err := s.repo.FindByUid(ctx, team.Uid)
	if err != nil {
		return Team{}, err
	}
	if existing == nil {
		return Team{}, ErrTeamNotFound
	}
	team.ID = existing.ID

	updated, err := s.repo.Update(ctx, team)
	if err != nil {
		return Team{}, err
	}
	if !updated {
		log.Warnf("team not updated, probably because it does not exist (%s)", team.Uid)
		return Team{}, fmt.Errorf("team not updated")
	}
	return team, nil
}

func (s *TeamServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	existing, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, ErrTeamNotFound
	}

	deleted, err := s.repo.Delete(ctx, existing.ID)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("team not deleted, probably because it does not exist (%s)", uid)
		return false, fmt.Errorf("team not deleted")
	}
	return true, nil
}
