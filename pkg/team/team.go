package team

// AlertFlags is the persisted hysteresis state of the budget alert engine.
// A flag set to true means an alert at that level has already been sent for
// the current threshold crossing. Both flags reset together once utilization
// drops below the warning threshold.
type AlertFlags struct {
	Warning  bool
	Critical bool
}

type Team struct {
	ID   int
	Uid  string
	Name string
	// Budget is the team's spending limit for the tracking period.
	Budget     float64
	AlertFlags AlertFlags
}
