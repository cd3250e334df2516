package expense

import (
	"context"
	"testing"
	"time"

	"github.com/Klea100/Expense-management-system/internal/test_utils"
	"github.com/Klea100/Expense-management-system/pkg/team"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeTestTeam(t *testing.T, teamRepo team.TeamRepo) int {
	t.Helper()
	id, err := teamRepo.Store(context.Background(), team.Team{Uid: uuid.NewString(), Name: "Engineering", Budget: 10000})
	require.NoError(t, err)
	return id
}

func TestExpenseRepoImpl_StoreAndFindByTeam(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	teamId := storeTestTeam(t, team.NewTeamRepo(db))
	repo := NewExpenseRepo(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	stored, err := repo.Store(ctx, Expense{
		Uid:         uuid.NewString(),
		TeamID:      teamId,
		Amount:      120.50,
		Description: "Flight to client site",
		Category:    CategoryTravel,
		Date:        now,
		Status:      StatusApproved,
	})
	require.NoError(t, err)
	require.NotZero(t, stored.ID)

	expenses, err := repo.FindByTeam(ctx, teamId, now.Add(-time.Hour), nil)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, stored.Uid, expenses[0].Uid)
	assert.Equal(t, CategoryTravel, expenses[0].Category)
	assert.Equal(t, StatusApproved, expenses[0].Status)
	assert.Equal(t, now.Unix(), expenses[0].Date.Unix())
}

func TestExpenseRepoImpl_FindByTeam_statusFilter(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	teamId := storeTestTeam(t, team.NewTeamRepo(db))
	repo := NewExpenseRepo(db)
	ctx := context.Background()
	now := time.Now()

	for _, status := range []Status{StatusPending, StatusApproved, StatusRejected} {
		_, err := repo.Store(ctx, Expense{
			Uid: uuid.NewString(), TeamID: teamId, Amount: 10,
			Description: string(status), Date: now, Status: status,
		})
		require.NoError(t, err)
	}

	active, err := repo.FindByTeam(ctx, teamId, now.Add(-time.Hour), []Status{StatusPending, StatusApproved})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	rejected, err := repo.FindByTeam(ctx, teamId, now.Add(-time.Hour), []Status{StatusRejected})
	require.NoError(t, err)
	assert.Len(t, rejected, 1)
}

func TestExpenseRepoImpl_TotalApproved(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	teamId := storeTestTeam(t, team.NewTeamRepo(db))
	repo := NewExpenseRepo(db)
	ctx := context.Background()
	now := time.Now()

	amounts := map[float64]Status{
		100.25: StatusApproved,
		200.25: StatusApproved,
		999.99: StatusPending,
	}
	for amount, status := range amounts {
		_, err := repo.Store(ctx, Expense{
			Uid: uuid.NewString(), TeamID: teamId, Amount: amount,
			Description: "x", Date: now, Status: status,
		})
		require.NoError(t, err)
	}

	total, err := repo.TotalApproved(ctx, teamId)
	require.NoError(t, err)
	assert.InDelta(t, 300.50, total, 0.001)
}

func TestExpenseRepoImpl_UpdateStatus(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	teamId := storeTestTeam(t, team.NewTeamRepo(db))
	repo := NewExpenseRepo(db)
	ctx := context.Background()

	stored, err := repo.Store(ctx, Expense{
		Uid: uuid.NewString(), TeamID: teamId, Amount: 10,
		Description: "x", Date: time.Now(), Status: StatusPending,
	})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, stored.ID, StatusApproved)
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindByUid(ctx, stored.Uid)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, StatusApproved, found.Status)
}
