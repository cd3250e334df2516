package team

import (
	"context"
)

type StubTeamRepo struct {
	nextId int
	data   map[int]Team
}

func NewStubTeamRepo() *StubTeamRepo {
	return &StubTeamRepo{nextId: 0, data: map[int]Team{}}
}

func (s *StubTeamRepo) Store(ctx context.Context, team Team) (int, error) {
	s.nextId++
	team.ID = s.nextId
	s.data[team.ID] = team
	return team.ID, nil
}

func (s *StubTeamRepo) GetAll(ctx context.Context) ([]Team, error) {
	teams := make([]Team, 0, len(s.data))
	for _, team := range s.data {
		teams = append(teams, team)
	}
	return teams, nil
}

func (s *StubTeamRepo) FindById(ctx context.Context, teamId int) (*Team, error) {
	if team, ok := s.data[teamId]; ok {
		return &team, nil
	}
	return nil, nil
}

func (s *StubTeamRepo) FindByUid(ctx context.Context, uid string) (*Team, error) {
	for _, team := range s.data {
		if team.Uid == uid {
			return &team, nil
		}
	}
	return nil, nil
}

func (s *StubTeamRepo) Update(ctx context.Context, team Team) (bool, error) {
	existing, ok := s.data[team.ID]
	if !ok {
		return false, nil
	}
	team.AlertFlags = existing.AlertFlags
	s.data[team.ID] = team
	return true, nil
}

func (s *StubTeamRepo) UpdateAlertFlags(ctx context.Context, teamId int, flags AlertFlags, expected AlertFlags) (bool, error) {
	existing, ok := s.data[teamId]
	if !ok || existing.AlertFlags != expected {
		return false, nil
	}
	existing.AlertFlags = flags
	s.data[teamId] = existing
	return true, nil
}

func (s *StubTeamRepo) Delete(ctx context.Context, teamId int) (bool, error) {
	if _, ok := s.data[teamId]; !ok {
		return false, nil
	}
	delete(s.data, teamId)
	return true, nil
}

func (s *StubTeamRepo) Cleanup() {
	s.data = map[int]Team{}
}
