package suggestion

import (
	"context"

	"github.com/Klea100/Expense-management-system/pkg/expense"
	log "github.com/sirupsen/logrus"
)

type SuggestionService interface {
	Suggest(ctx context.Context, description string) Suggestion
}

// SuggestionServiceImpl tries the external classifier first and degrades to
// keyword matching. Suggest never fails: a suggestion is advisory.
type SuggestionServiceImpl struct {
	classifier Classifier
}

// NewSuggestionServiceImpl accepts a nil classifier, in which case keyword
// matching is the only strategy.
func NewSuggestionServiceImpl(classifier Classifier) *SuggestionServiceImpl {
	return &SuggestionServiceImpl{classifier: classifier}
}

const unknownCategoryPenalty = 0.3

func (s *SuggestionServiceImpl) Suggest(ctx context.Context, description string) Suggestion {
	if s.classifier == nil {
		return SuggestByKeywords(description)
	}

	classification, err := s.classifier.Classify(ctx, description)
	if err != nil {
		log.Warnf("Classifier failed, falling back to keywords: %v", err)
		return SuggestByKeywords(description)
	}

	confidence := classification.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	category, known := expense.ParseCategory(classification.Category)
	reasoning := classification.Reasoning
	if !known {
		// the classifier answered with something outside the category set;
		// keep the signal but downgrade it
		category = expense.CategoryOther
		confidence -= unknownCategoryPenalty
		if confidence < noMatchConfidence {
			confidence = noMatchConfidence
		}
		note := "unknown category " + classification.Category + ", downgraded to other"
		if reasoning == "" {
			reasoning = note
		} else {
			reasoning += "; " + note
		}
	}

	return Suggestion{
		Category:   category,
		Confidence: confidence,
		Reasoning:  reasoning,
		Source:     SourceClassifier,
	}
}

var _ SuggestionService = (*SuggestionServiceImpl)(nil)
