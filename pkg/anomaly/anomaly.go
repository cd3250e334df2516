package anomaly

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Klea100/Expense-management-system/pkg/expense"
)

type FindingType string

const (
	FindingDuplicate FindingType = "duplicate"
	FindingOutlier   FindingType = "outlier"
)

type Finding struct {
	Type        FindingType
	ExpenseUids []string
	Reason      string
	Confidence  float64
}

const (
	// duplicate detection
	duplicateSimilarityCutoff = 0.7
	duplicateAmountTolerance  = 0.01
	duplicateMaxDayGap        = 7

	// outlier detection
	outlierMinExpenses = 5
	outlierIQRFactor   = 1.5
	outlierConfidence  = 0.7

	maxFindings = 10
)

// Detect runs duplicate and outlier detection over a team's recent expenses
// and returns at most maxFindings findings, duplicates first.
func Detect(expenses []expense.Expense) []Finding {
	findings := detectDuplicates(expenses)
	findings = append(findings, detectOutliers(expenses)...)

	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}
	return findings
}

// detectDuplicates flags pairs of expenses with near-identical amounts and
// descriptions submitted within a few days of each other.
func detectDuplicates(expenses []expense.Expense) []Finding {
	var findings []Finding
	for i := 0; i < len(expenses); i++ {
		for j := i + 1; j < len(expenses); j++ {
			first, second := expenses[i], expenses[j]

			if math.Abs(first.Amount-second.Amount) >= duplicateAmountTolerance {
				continue
			}
			dayGap := first.Date.Sub(second.Date)
			if dayGap < 0 {
				dayGap = -dayGap
			}
			if dayGap > duplicateMaxDayGap*24*time.Hour {
				continue
			}
			similarity := Similarity(first.Description, second.Description)
			if similarity <= duplicateSimilarityCutoff {
				continue
			}

			findings = append(findings, Finding{
				Type:        FindingDuplicate,
				ExpenseUids: []string{first.Uid, second.Uid},
				Reason: fmt.Sprintf("%.2f similar to %q for the same amount within %d days",
					similarity, second.Description, duplicateMaxDayGap),
				Confidence: similarity,
			})
		}
	}
	return findings
}

// detectOutliers flags amounts above Q3 + 1.5*IQR. It needs more than
// outlierMinExpenses data points to say anything meaningful.
func detectOutliers(expenses []expense.Expense) []Finding {
	if len(expenses) <= outlierMinExpenses {
		return nil
	}

	amounts := make([]float64, 0, len(expenses))
	for _, e := range expenses {
		amounts = append(amounts, e.Amount)
	}
	sort.Float64s(amounts)

	q1 := amounts[len(amounts)/4]
	q3 := amounts[len(amounts)*3/4]
	upperFence := q3 + outlierIQRFactor*(q3-q1)

	var findings []Finding
	for _, e := range expenses {
		if e.Amount <= upperFence {
			continue
		}
		findings = append(findings, Finding{
			Type:        FindingOutlier,
			ExpenseUids: []string{e.Uid},
			Reason:      fmt.Sprintf("amount %.2f is above the upper fence %.2f for this team", e.Amount, upperFence),
			Confidence:  outlierConfidence,
		})
	}
	return findings
}

// Similarity returns a 0..1 score between two descriptions, case-insensitive,
// based on the Levenshtein distance relative to the longer string. Distances
// are computed over runes so multibyte characters count as single edits.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}

	runesA, runesB := []rune(a), []rune(b)
	longest := len(runesA)
	if len(runesB) > longest {
		longest = len(runesB)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(runesA, runesB))/float64(longest)
}

// levenshtein computes the edit distance with a single rolling row.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		previous[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = minInt(previous[j]+1, current[j-1]+1, previous[j-1]+cost)
		}
		previous, current = current, previous
	}
	return previous[len(b)]
}

func minInt(values ...int) int {
	smallest := values[0]
	for _, value := range values[1:] {
		if value < smallest {
			smallest = value
		}
	}
	return smallest
}
