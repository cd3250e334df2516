package suggestion

import (
	"strings"

	"github.com/Klea100/Expense-management-system/pkg/expense"
)

type Source string

const (
	SourceClassifier Source = "classifier"
	SourceKeywords   Source = "keywords"
)

type Suggestion struct {
	Category   expense.Category
	Confidence float64
	Reasoning  string
	Source     Source
}

// categoryKeywords drives the fallback scorer. Matching is substring-based on
// the lowercased description, so "flights" matches "flight".
var categoryKeywords = map[expense.Category][]string{
	expense.CategoryTravel:        {"flight", "hotel", "taxi", "uber", "train", "airfare", "mileage", "parking", "rental car"},
	expense.CategoryFood:          {"lunch", "dinner", "breakfast", "coffee", "catering", "restaurant", "snacks", "pizza"},
	expense.CategorySupplies:      {"paper", "pens", "stationery", "toner", "envelopes", "notebook", "whiteboard"},
	expense.CategorySoftware:      {"license", "subscription", "saas", "cloud", "hosting", "domain", "api credits"},
	expense.CategoryHardware:      {"laptop", "monitor", "keyboard", "mouse", "cable", "printer", "docking station", "headset"},
	expense.CategoryTraining:      {"course", "conference", "workshop", "certification", "seminar", "textbook"},
	expense.CategoryEntertainment: {"tickets", "team event", "party", "bowling", "movie", "concert"},
}

const (
	keywordBaseConfidence = 0.3
	keywordStepConfidence = 0.2
	keywordMaxConfidence  = 0.8
	noMatchConfidence     = 0.1
)

// SuggestByKeywords scores every category by the number of keyword hits in
// the description. Ties go to the category declared first. No hits at all
// falls back to "other" with low confidence.
func SuggestByKeywords(description string) Suggestion {
	lowered := strings.ToLower(description)

	best := expense.CategoryOther
	bestMatches := 0
	for _, category := range expense.Categories {
		matches := 0
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				matches++
			}
		}
		if matches > bestMatches {
			best = category
			bestMatches = matches
		}
	}

	if bestMatches == 0 {
		return Suggestion{
			Category:   expense.CategoryOther,
			Confidence: noMatchConfidence,
			Reasoning:  "no category keywords matched",
			Source:     SourceKeywords,
		}
	}

	confidence := keywordBaseConfidence + keywordStepConfidence*float64(bestMatches)
	if confidence > keywordMaxConfidence {
		confidence = keywordMaxConfidence
	}
	return Suggestion{
		Category:   best,
		Confidence: confidence,
		Reasoning:  "matched keywords for " + string(best),
		Source:     SourceKeywords,
	}
}
