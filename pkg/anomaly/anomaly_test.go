package anomaly

import (
	"fmt"
	"testing"
	"time"

	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_duplicatePair(t *testing.T) {
	day := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{Uid: "a", Amount: 45.50, Description: "Team lunch", Date: day},
		{Uid: "b", Amount: 45.50, Description: "Team Lunch ", Date: day.AddDate(0, 0, 2)},
	}

	findings := Detect(expenses)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingDuplicate, findings[0].Type)
	assert.Equal(t, []string{"a", "b"}, findings[0].ExpenseUids)
	assert.Equal(t, 1.0, findings[0].Confidence)
}

func TestDetect_noDuplicateOutsideWindow(t *testing.T) {
	day := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{Uid: "a", Amount: 45.50, Description: "Team lunch", Date: day},
		{Uid: "b", Amount: 45.50, Description: "Team lunch", Date: day.AddDate(0, 0, 8)},
	}

	assert.Empty(t, Detect(expenses))
}

func TestDetect_noDuplicateOnDifferentAmounts(t *testing.T) {
	day := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{Uid: "a", Amount: 45.50, Description: "Team lunch", Date: day},
		{Uid: "b", Amount: 46.50, Description: "Team lunch", Date: day},
	}

	assert.Empty(t, Detect(expenses))
}

func TestDetect_outlier(t *testing.T) {
	day := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	amounts := []float64{10, 12, 11, 13, 9, 500}
	expenses := make([]expense.Expense, 0, len(amounts))
	for i, amount := range amounts {
		expenses = append(expenses, expense.Expense{
			Uid: fmt.Sprintf("e%d", i), Amount: amount,
			Description: fmt.Sprintf("purchase %d", i), Date: day.AddDate(0, 0, i),
		})
	}

	findings := Detect(expenses)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingOutlier, findings[0].Type)
	assert.Equal(t, []string{"e5"}, findings[0].ExpenseUids)
	assert.Equal(t, 0.7, findings[0].Confidence)
}

func TestDetect_outlierNeedsEnoughData(t *testing.T) {
	day := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	amounts := []float64{10, 12, 11, 13, 500}
	expenses := make([]expense.Expense, 0, len(amounts))
	for i, amount := range amounts {
		expenses = append(expenses, expense.Expense{
			Uid: fmt.Sprintf("e%d", i), Amount: amount,
			Description: fmt.Sprintf("purchase %d", i), Date: day.AddDate(0, 0, i),
		})
	}

	// five expenses is not enough for the IQR rule
	assert.Empty(t, Detect(expenses))
}

func TestDetect_capsFindings(t *testing.T) {
	day := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	var expenses []expense.Expense
	for i := 0; i < 12; i++ {
		expenses = append(expenses, expense.Expense{
			Uid: fmt.Sprintf("e%d", i), Amount: 99.99,
			Description: "Monthly subscription", Date: day,
		})
	}

	findings := Detect(expenses)
	assert.Len(t, findings, 10)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "team lunch", "team lunch", 1},
		{"case and whitespace", "Team lunch", "team Lunch ", 1},
		{"both empty", "", "", 1},
		{"one empty", "lunch", "", 0},
		{"disjoint", "abc", "xyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 0.001)
		})
	}
}

func TestSimilarity_symmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"Team lunch", "Team dinner"},
		{"Flight to Berlin", "Flight to Munich"},
		{"a", "abcdefgh"},
	}
	for _, pair := range pairs {
		forward := Similarity(pair[0], pair[1])
		backward := Similarity(pair[1], pair[0])
		assert.Equal(t, forward, backward)
		assert.GreaterOrEqual(t, forward, 0.0)
		assert.LessOrEqual(t, forward, 1.0)
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 3, levenshtein([]rune("kitten"), []rune("sitting")))
	assert.Equal(t, 0, levenshtein([]rune("same"), []rune("same")))
	assert.Equal(t, 4, levenshtein([]rune(""), []rune("four")))
	// multibyte characters are single edits, not byte sequences
	assert.Equal(t, 1, levenshtein([]rune("café"), []rune("cafe")))
}

func TestSimilarity_multibyteDescriptions(t *testing.T) {
	// one substitution over ten runes
	assert.InDelta(t, 0.9, Similarity("Café lunch", "Cafe lunch"), 0.001)
	assert.Equal(t, 1.0, Similarity("Café lunch", "café lunch "))
}
