package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/Klea100/Expense-management-system/pkg/alerting"
	"github.com/Klea100/Expense-management-system/pkg/expense"
)

type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

type TrendStrength string

const (
	StrengthLow    TrendStrength = "low"
	StrengthMedium TrendStrength = "medium"
	StrengthHigh   TrendStrength = "high"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type RecommendationType string

const (
	RecommendationCritical RecommendationType = "critical"
	RecommendationWarning  RecommendationType = "warning"
	RecommendationInfo     RecommendationType = "info"
	RecommendationPositive RecommendationType = "positive"
)

type Recommendation struct {
	Type    RecommendationType
	Message string
	Action  string
}

type Result struct {
	AvgDailySpend        float64
	ProjectedSpend       float64
	ProjectedTotal       float64
	ProjectedUtilization int
	TrendDirection       TrendDirection
	TrendStrength        TrendStrength
	Confidence           Confidence
	Recommendations      []Recommendation
}

// trend half-split cutoffs, in percent change between half averages.
const (
	trendDirectionCutoff = 10.0
	trendMediumCutoff    = 20.0
	trendHighCutoff      = 50.0
)

// Compute projects near-future utilization from recent daily spending.
// It is pure: expenses are the team's approved spend inside the lookback
// window, totalSpent the team's full approved total.
func Compute(expenses []expense.Expense, totalSpent, budget float64, windowDays int, thresholds alerting.Thresholds) Result {
	dailyTotals := bucketByDay(expenses)

	totalRecent := 0.0
	for _, dayTotal := range dailyTotals {
		totalRecent += dayTotal
	}
	avgDailySpend := 0.0
	if len(dailyTotals) > 0 {
		avgDailySpend = totalRecent / float64(len(dailyTotals))
	}

	direction, strength := trend(dailyTotals)

	projectedSpend := avgDailySpend * float64(windowDays)
	projectedTotal := totalSpent + projectedSpend
	projectedUtilization := alerting.Utilization(projectedTotal, budget)

	confidence := ConfidenceMedium
	if len(expenses) < 5 {
		confidence = ConfidenceLow
	} else if len(expenses) > 20 {
		confidence = ConfidenceHigh
	}

	return Result{
		AvgDailySpend:        avgDailySpend,
		ProjectedSpend:       projectedSpend,
		ProjectedTotal:       projectedTotal,
		ProjectedUtilization: projectedUtilization,
		TrendDirection:       direction,
		TrendStrength:        strength,
		Confidence:           confidence,
		Recommendations:      recommend(projectedUtilization, direction, strength, thresholds, windowDays),
	}
}

// bucketByDay sums amounts per calendar day and returns the daily totals in
// date order.
func bucketByDay(expenses []expense.Expense) []float64 {
	byDay := map[string]float64{}
	for _, e := range expenses {
		byDay[e.Date.Format(time.DateOnly)] += e.Amount
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	totals := make([]float64, 0, len(days))
	for _, day := range days {
		totals = append(totals, byDay[day])
	}
	return totals
}

// trend splits the ordered daily totals into two halves and compares their
// averages. Fewer than 3 daily buckets is not enough signal.
func trend(dailyTotals []float64) (TrendDirection, TrendStrength) {
	if len(dailyTotals) < 3 {
		return TrendInsufficientData, StrengthLow
	}

	half := len(dailyTotals) / 2
	firstAvg := average(dailyTotals[:half])
	secondAvg := average(dailyTotals[half:])

	var change float64
	if firstAvg == 0 {
		if secondAvg == 0 {
			change = 0
		} else {
			change = 100
		}
	} else {
		change = (secondAvg - firstAvg) / firstAvg * 100
	}

	direction := TrendStable
	if change > trendDirectionCutoff {
		direction = TrendIncreasing
	} else if change < -trendDirectionCutoff {
		direction = TrendDecreasing
	}

	magnitude := change
	if magnitude < 0 {
		magnitude = -magnitude
	}
	strength := StrengthLow
	if magnitude > trendHighCutoff {
		strength = StrengthHigh
	} else if magnitude > trendMediumCutoff {
		strength = StrengthMedium
	}

	return direction, strength
}

func recommend(projectedUtilization int, direction TrendDirection, strength TrendStrength,
	thresholds alerting.Thresholds, windowDays int) []Recommendation {
	var recommendations []Recommendation

	switch {
	case projectedUtilization >= thresholds.Critical:
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationCritical,
			Message: fmt.Sprintf("Projected spending reaches %d%% of the budget within %d days", projectedUtilization, windowDays),
			Action:  "Freeze non-essential spending and review the team budget",
		})
	case projectedUtilization >= thresholds.Warning:
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationWarning,
			Message: fmt.Sprintf("Projected spending reaches %d%% of the budget within %d days", projectedUtilization, windowDays),
			Action:  "Review upcoming expenses before approving them",
		})
	}

	if direction == TrendIncreasing {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationInfo,
			Message: fmt.Sprintf("Daily spending is increasing (%s strength)", strength),
			Action:  "Check the most recent expenses for one-off or recurring growth",
		})
	}

	if projectedUtilization < thresholds.Warning && direction != TrendIncreasing {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationPositive,
			Message: fmt.Sprintf("Spending is on track at a projected %d%% of the budget", projectedUtilization),
			Action:  "No action needed",
		})
	}

	return recommendations
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}
