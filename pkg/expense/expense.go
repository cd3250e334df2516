package expense

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Category is a closed set shared by expense validation, category
// suggestion, and reporting.
type Category string

const (
	CategoryTravel        Category = "travel"
	CategoryFood          Category = "food"
	CategorySupplies      Category = "supplies"
	CategorySoftware      Category = "software"
	CategoryHardware      Category = "hardware"
	CategoryTraining      Category = "training"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// Categories lists all valid categories. Order matters: the category
// suggester breaks scoring ties by declaration order.
var Categories = []Category{
	CategoryTravel,
	CategoryFood,
	CategorySupplies,
	CategorySoftware,
	CategoryHardware,
	CategoryTraining,
	CategoryEntertainment,
	CategoryOther,
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if Category(s) == c {
			return c, true
		}
	}
	return "", false
}

type Expense struct {
	ID          int
	Uid         string
	TeamID      int
	Amount      float64
	Description string
	// Category may be empty until set manually or accepted from a suggestion.
	Category Category
	Date     time.Time
	Status   Status
}
