package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/Klea100/Expense-management-system/internal/config"
	"github.com/Klea100/Expense-management-system/internal/utils"
	"github.com/Klea100/Expense-management-system/pkg/alerting"
	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/Klea100/Expense-management-system/pkg/team"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*team.StubTeamRepo, *expense.StubExpenseRepo, *ForecastServiceImpl, time.Time) {
	t.Helper()
	teamRepo := team.NewStubTeamRepo()
	expenseRepo := expense.NewStubExpenseRepo()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	clock := &utils.MockClock{FixedNow: now}
	cfg := config.Forecast{LookbackDays: 30, WindowDays: 30}
	service := NewForecastServiceImpl(teamRepo, expenseRepo, cfg, alerting.DefaultThresholds(), clock)
	return teamRepo, expenseRepo, service, now
}

func TestForecastServiceImpl_ForecastTeam(t *testing.T) {
	teamRepo, expenseRepo, service, now := setupService(t)
	ctx := context.Background()

	stored := team.Team{Uid: uuid.NewString(), Name: "Engineering", Budget: 10000}
	id, err := teamRepo.Store(ctx, stored)
	require.NoError(t, err)

	// six consecutive days of approved spend inside the lookback window,
	// plus a rejected expense and an old expense that must not count
	for i, amount := range []float64{10, 10, 10, 50, 50, 50} {
		_, err := expenseRepo.Store(ctx, expense.Expense{
			Uid: uuid.NewString(), TeamID: id, Amount: amount,
			Date: now.AddDate(0, 0, -6+i), Status: expense.StatusApproved,
		})
		require.NoError(t, err)
	}
	_, err = expenseRepo.Store(ctx, expense.Expense{
		Uid: uuid.NewString(), TeamID: id, Amount: 999,
		Date: now.AddDate(0, 0, -2), Status: expense.StatusRejected,
	})
	require.NoError(t, err)
	_, err = expenseRepo.Store(ctx, expense.Expense{
		Uid: uuid.NewString(), TeamID: id, Amount: 500,
		Date: now.AddDate(0, 0, -60), Status: expense.StatusApproved,
	})
	require.NoError(t, err)

	result, err := service.ForecastTeam(ctx, stored.Uid)
	require.NoError(t, err)

	assert.Equal(t, TrendIncreasing, result.TrendDirection)
	assert.Equal(t, StrengthHigh, result.TrendStrength)
	assert.InDelta(t, 30.0, result.AvgDailySpend, 0.001)
	assert.InDelta(t, 900.0, result.ProjectedSpend, 0.001)
	// the old approved expense still counts towards total spend
	assert.InDelta(t, 1580.0, result.ProjectedTotal, 0.001)
	assert.Equal(t, 16, result.ProjectedUtilization)
}

func TestForecastServiceImpl_ForecastTeam_teamNotFound(t *testing.T) {
	_, _, service, _ := setupService(t)

	_, err := service.ForecastTeam(context.Background(), "missing")
	assert.ErrorIs(t, err, team.ErrTeamNotFound)
}

func TestForecastServiceImpl_ForecastTeam_invalidBudget(t *testing.T) {
	teamRepo, _, service, _ := setupService(t)
	ctx := context.Background()

	stored := team.Team{Uid: uuid.NewString(), Name: "No budget"}
	_, err := teamRepo.Store(ctx, stored)
	require.NoError(t, err)

	_, err = service.ForecastTeam(ctx, stored.Uid)
	assert.ErrorIs(t, err, team.ErrInvalidBudget)
}
