package alerting

import (
	"math"
	"time"

	"github.com/Klea100/Expense-management-system/pkg/team"
)

type Level string

const (
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Thresholds are percentage-of-budget integers. Warning is assumed to be
// below Critical; config validation enforces that at startup.
type Thresholds struct {
	Warning  int
	Critical int
}

func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 80, Critical: 100}
}

// AlertEvent is emitted when a team crosses a budget threshold. It is not
// persisted; delivery is fire-and-report through a Notifier.
type AlertEvent struct {
	TeamUid     string
	TeamName    string
	Level       Level
	Utilization int
	Timestamp   time.Time
}

// Decision is the outcome of one evaluation: the next flag state to persist
// and the events to deliver (at most one per evaluation).
type Decision struct {
	Flags  team.AlertFlags
	Events []AlertEvent
}

// Utilization returns the percentage of budget consumed, rounded to the
// nearest integer. A non-positive budget yields 0. Values above 100 mean the
// team is over budget.
func Utilization(totalSpent, budget float64) int {
	if budget <= 0 {
		return 0
	}
	return int(math.Round(totalSpent / budget * 100))
}
