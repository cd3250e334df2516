package alerting

import (
	"github.com/Klea100/Expense-management-system/pkg/team"
)

// Decide runs the threshold state machine for a single team and returns the
// next flag state plus the events to emit. It is pure: callers own reading
// the current flags and persisting the new ones atomically.
//
// The hysteresis rules:
//   - crossing the critical threshold fires once until the flags reset;
//     critical takes priority, so a single evaluation emits at most one event
//   - crossing the warning threshold fires once until the flags reset
//   - dropping below the warning threshold resets both flags together, so a
//     later re-crossing alerts again
func Decide(utilization int, thresholds Thresholds, flags team.AlertFlags) Decision {
	decision := Decision{Flags: flags}

	switch {
	case utilization >= thresholds.Critical:
		if !flags.Critical {
			decision.Events = append(decision.Events, AlertEvent{
				Level:       LevelCritical,
				Utilization: utilization,
			})
			decision.Flags.Critical = true
		}
	case utilization >= thresholds.Warning:
		if !flags.Warning {
			decision.Events = append(decision.Events, AlertEvent{
				Level:       LevelWarning,
				Utilization: utilization,
			})
			decision.Flags.Warning = true
		}
	default:
		decision.Flags = team.AlertFlags{}
	}

	return decision
}
