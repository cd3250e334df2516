package forecast

import (
	"testing"
	"time"

	"github.com/Klea100/Expense-management-system/pkg/alerting"
	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyExpenses(start time.Time, amounts ...float64) []expense.Expense {
	expenses := make([]expense.Expense, 0, len(amounts))
	for i, amount := range amounts {
		expenses = append(expenses, expense.Expense{
			Amount: amount,
			Date:   start.AddDate(0, 0, i),
			Status: expense.StatusApproved,
		})
	}
	return expenses
}

func TestCompute_increasingTrend(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := dailyExpenses(start, 10, 10, 10, 50, 50, 50)

	result := Compute(expenses, 180, 10000, 30, alerting.DefaultThresholds())

	assert.Equal(t, TrendIncreasing, result.TrendDirection)
	assert.Equal(t, StrengthHigh, result.TrendStrength)
	assert.InDelta(t, 30.0, result.AvgDailySpend, 0.001)
	assert.InDelta(t, 900.0, result.ProjectedSpend, 0.001)
	assert.InDelta(t, 1080.0, result.ProjectedTotal, 0.001)
	assert.Equal(t, 11, result.ProjectedUtilization)
}

func TestCompute_decreasingTrend(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := dailyExpenses(start, 100, 100, 100, 60, 60, 60)

	result := Compute(expenses, 480, 100000, 30, alerting.DefaultThresholds())

	assert.Equal(t, TrendDecreasing, result.TrendDirection)
	assert.Equal(t, StrengthMedium, result.TrendStrength)
}

func TestCompute_stableTrend(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := dailyExpenses(start, 50, 52, 49, 51, 50, 50)

	result := Compute(expenses, 302, 100000, 30, alerting.DefaultThresholds())

	assert.Equal(t, TrendStable, result.TrendDirection)
	assert.Equal(t, StrengthLow, result.TrendStrength)
}

func TestCompute_insufficientData(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := dailyExpenses(start, 10, 20)

	result := Compute(expenses, 30, 1000, 30, alerting.DefaultThresholds())

	assert.Equal(t, TrendInsufficientData, result.TrendDirection)
	assert.Equal(t, StrengthLow, result.TrendStrength)
}

func TestCompute_noExpenses(t *testing.T) {
	result := Compute(nil, 0, 1000, 30, alerting.DefaultThresholds())

	assert.Equal(t, TrendInsufficientData, result.TrendDirection)
	assert.Zero(t, result.AvgDailySpend)
	assert.Zero(t, result.ProjectedSpend)
	assert.Zero(t, result.ProjectedUtilization)
}

func TestCompute_sameDayExpensesShareABucket(t *testing.T) {
	day := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{Amount: 10, Date: day, Status: expense.StatusApproved},
		{Amount: 20, Date: day.Add(4 * time.Hour), Status: expense.StatusApproved},
		{Amount: 30, Date: day.AddDate(0, 0, 1), Status: expense.StatusApproved},
	}

	result := Compute(expenses, 60, 10000, 30, alerting.DefaultThresholds())

	// two buckets of 30 each
	assert.InDelta(t, 30.0, result.AvgDailySpend, 0.001)
	assert.Equal(t, TrendInsufficientData, result.TrendDirection)
}

func TestCompute_confidence(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	few := Compute(dailyExpenses(start, 10, 10, 10), 30, 100000, 30, alerting.DefaultThresholds())
	assert.Equal(t, ConfidenceLow, few.Confidence)

	amounts := make([]float64, 10)
	for i := range amounts {
		amounts[i] = 10
	}
	some := Compute(dailyExpenses(start, amounts...), 100, 100000, 30, alerting.DefaultThresholds())
	assert.Equal(t, ConfidenceMedium, some.Confidence)

	amounts = make([]float64, 25)
	for i := range amounts {
		amounts[i] = 10
	}
	many := Compute(dailyExpenses(start, amounts...), 250, 100000, 30, alerting.DefaultThresholds())
	assert.Equal(t, ConfidenceHigh, many.Confidence)
}

func TestCompute_recommendations(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	thresholds := alerting.DefaultThresholds()

	t.Run("critical when projected over budget", func(t *testing.T) {
		expenses := dailyExpenses(start, 100, 100, 100)
		result := Compute(expenses, 300, 1000, 30, thresholds)

		require.NotEmpty(t, result.Recommendations)
		assert.Equal(t, RecommendationCritical, result.Recommendations[0].Type)
	})

	t.Run("warning when projected near budget", func(t *testing.T) {
		expenses := dailyExpenses(start, 10, 10, 10)
		result := Compute(expenses, 600, 1000, 30, thresholds)

		require.NotEmpty(t, result.Recommendations)
		assert.Equal(t, RecommendationWarning, result.Recommendations[0].Type)
	})

	t.Run("info on an increasing trend", func(t *testing.T) {
		expenses := dailyExpenses(start, 1, 1, 1, 5, 5, 5)
		result := Compute(expenses, 18, 100000, 30, thresholds)

		require.NotEmpty(t, result.Recommendations)
		assert.Equal(t, RecommendationInfo, result.Recommendations[0].Type)
	})

	t.Run("positive when on track", func(t *testing.T) {
		expenses := dailyExpenses(start, 10, 10, 10)
		result := Compute(expenses, 30, 100000, 30, thresholds)

		require.Len(t, result.Recommendations, 1)
		assert.Equal(t, RecommendationPositive, result.Recommendations[0].Type)
	})
}
