package suggestion

import (
	"testing"

	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/stretchr/testify/assert"
)

func TestSuggestByKeywords(t *testing.T) {
	tests := []struct {
		name           string
		description    string
		wantCategory   expense.Category
		wantConfidence float64
	}{
		{"single travel match", "Flight to client site", expense.CategoryTravel, 0.5},
		{"two travel matches", "Flight and hotel for the offsite", expense.CategoryTravel, 0.7},
		{"capped confidence", "Flight, hotel, taxi and parking", expense.CategoryTravel, 0.8},
		{"food", "Team lunch at the office", expense.CategoryFood, 0.5},
		{"software", "Annual SaaS subscription renewal", expense.CategorySoftware, 0.7},
		{"case insensitive", "LAPTOP replacement", expense.CategoryHardware, 0.5},
		{"no match", "Miscellaneous charge", expense.CategoryOther, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SuggestByKeywords(tt.description)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
			assert.Equal(t, SourceKeywords, result.Source)
		})
	}
}

func TestSuggestByKeywords_tieGoesToFirstDeclaredCategory(t *testing.T) {
	// one travel keyword and one food keyword: travel is declared first
	result := SuggestByKeywords("Taxi to the restaurant")

	assert.Equal(t, expense.CategoryTravel, result.Category)
	assert.InDelta(t, 0.5, result.Confidence, 0.001)
}
