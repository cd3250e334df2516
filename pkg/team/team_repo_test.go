package team

import (
	"context"
	"testing"

	"github.com/Klea100/Expense-management-system/internal/test_utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepoImpl_StoreAndFind(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewTeamRepo(db)
	ctx := context.Background()

	stored := Team{Uid: uuid.NewString(), Name: "Marketing", Budget: 12000}
	id, err := repo.Store(ctx, stored)
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.FindById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, stored.Uid, found.Uid)
	assert.Equal(t, stored.Name, found.Name)
	assert.Equal(t, stored.Budget, found.Budget)
	assert.Equal(t, AlertFlags{}, found.AlertFlags)

	byUid, err := repo.FindByUid(ctx, stored.Uid)
	require.NoError(t, err)
	require.NotNil(t, byUid)
	assert.Equal(t, id, byUid.ID)
}

func TestTeamRepoImpl_FindById_notFound(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewTeamRepo(db)

	found, err := repo.FindById(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTeamRepoImpl_UpdateAlertFlags(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewTeamRepo(db)
	ctx := context.Background()

	id, err := repo.Store(ctx, Team{Uid: uuid.NewString(), Name: "Sales", Budget: 3000})
	require.NoError(t, err)

	// matching expectation wins
	updated, err := repo.UpdateAlertFlags(ctx, id, AlertFlags{Warning: true}, AlertFlags{})
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, AlertFlags{Warning: true}, found.AlertFlags)

	// stale expectation loses
	updated, err = repo.UpdateAlertFlags(ctx, id, AlertFlags{Warning: true, Critical: true}, AlertFlags{})
	require.NoError(t, err)
	assert.False(t, updated)

	found, err = repo.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, AlertFlags{Warning: true}, found.AlertFlags)
}

func TestTeamRepoImpl_Delete(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewTeamRepo(db)
	ctx := context.Background()

	id, err := repo.Store(ctx, Team{Uid: uuid.NewString(), Name: "Ops", Budget: 100})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := repo.FindById(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, found)
}
