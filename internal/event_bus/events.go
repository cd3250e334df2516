package event_bus

import "time"

const (
	// ExpenseApproved fires after an expense transitions to approved status.
	// The alert engine listens to it to re-evaluate the team budget.
	ExpenseApproved EventType = "expense.approved"
	// ExpenseRejected fires after an expense transitions to rejected status.
	ExpenseRejected EventType = "expense.rejected"
	// ExpenseChanged fires when an approved expense is modified or deleted:
	// the spent total may have moved without a status transition.
	ExpenseChanged EventType = "expense.changed"
)

type ExpenseStatusChanged struct {
	ExpenseId  int
	ExpenseUid string
	TeamId     int
	Amount     float64
	Category   string
	Date       time.Time
}
