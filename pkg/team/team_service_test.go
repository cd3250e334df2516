package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamServiceImpl_Create(t *testing.T) {
	repo := NewStubTeamRepo()
	service := NewTeamServiceImpl(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, Team{Name: "Platform", Budget: 5000})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, "Platform", created.Name)
	assert.Equal(t, AlertFlags{}, created.AlertFlags)
}

func TestTeamServiceImpl_Create_rejectsNonPositiveBudget(t *testing.T) {
	service := NewTeamServiceImpl(NewStubTeamRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		budget float64
	}{
		{"zero budget", 0},
		{"negative budget", -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, Team{Name: "Broken", Budget: tt.budget})
			assert.ErrorIs(t, err, ErrInvalidBudget)
		})
	}
}

func TestTeamServiceImpl_Update(t *testing.T) {
	repo := NewStubTeamRepo()
	service := NewTeamServiceImpl(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, Team{Name: "Platform", Budget: 5000})
	require.NoError(t, err)

	created.Budget = 8000
	updated, err := service.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, float64(8000), updated.Budget)

	_, err = service.Update(ctx, Team{Uid: "missing", Name: "x", Budget: 10})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamServiceImpl_Delete(t *testing.T) {
	repo := NewStubTeamRepo()
	service := NewTeamServiceImpl(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, Team{Name: "Platform", Budget: 5000})
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.Uid)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = service.Get(ctx, created.Uid)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
