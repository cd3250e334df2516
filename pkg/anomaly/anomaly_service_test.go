package anomaly

import (
	"context"
	"testing"
	"time"

	"github.com/Klea100/Expense-management-system/internal/config"
	"github.com/Klea100/Expense-management-system/internal/utils"
	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/Klea100/Expense-management-system/pkg/team"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnomalyServiceImpl_DetectForTeam(t *testing.T) {
	teamRepo := team.NewStubTeamRepo()
	expenseRepo := expense.NewStubExpenseRepo()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	clock := &utils.MockClock{FixedNow: now}
	service := NewAnomalyServiceImpl(teamRepo, expenseRepo, config.Anomaly{LookbackDays: 30}, clock)
	ctx := context.Background()

	stored := team.Team{Uid: uuid.NewString(), Name: "Engineering", Budget: 1000}
	id, err := teamRepo.Store(ctx, stored)
	require.NoError(t, err)

	// a pending/approved near-duplicate pair
	_, err = expenseRepo.Store(ctx, expense.Expense{
		Uid: "dup-1", TeamID: id, Amount: 45.50, Description: "Team lunch",
		Date: now.AddDate(0, 0, -3), Status: expense.StatusApproved,
	})
	require.NoError(t, err)
	_, err = expenseRepo.Store(ctx, expense.Expense{
		Uid: "dup-2", TeamID: id, Amount: 45.50, Description: "Team Lunch",
		Date: now.AddDate(0, 0, -1), Status: expense.StatusPending,
	})
	require.NoError(t, err)

	// a rejected twin that must be ignored
	_, err = expenseRepo.Store(ctx, expense.Expense{
		Uid: "rejected", TeamID: id, Amount: 45.50, Description: "Team lunch",
		Date: now.AddDate(0, 0, -2), Status: expense.StatusRejected,
	})
	require.NoError(t, err)

	findings, err := service.DetectForTeam(ctx, stored.Uid)
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingDuplicate, findings[0].Type)
	assert.ElementsMatch(t, []string{"dup-1", "dup-2"}, findings[0].ExpenseUids)
}

func TestAnomalyServiceImpl_DetectForTeam_teamNotFound(t *testing.T) {
	teamRepo := team.NewStubTeamRepo()
	expenseRepo := expense.NewStubExpenseRepo()
	clock := &utils.MockClock{FixedNow: time.Now()}
	service := NewAnomalyServiceImpl(teamRepo, expenseRepo, config.Anomaly{LookbackDays: 30}, clock)

	_, err := service.DetectForTeam(context.Background(), "missing")
	assert.ErrorIs(t, err, team.ErrTeamNotFound)
}
