package alerting

import (
	"context"
	"sync"

	"github.com/Klea100/Expense-management-system/internal/event_bus"
	"github.com/Klea100/Expense-management-system/internal/utils"
	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/Klea100/Expense-management-system/pkg/team"
	log "github.com/sirupsen/logrus"
)

// EvaluationResult is the per-team outcome of a budget evaluation. Data
// problems (missing team, non-positive budget) are reported through Success
// and Message so a batch run can continue past a failing team.
type EvaluationResult struct {
	TeamUid     string
	TeamName    string
	Success     bool
	Message     string
	Utilization int
	Events      []AlertEvent
}

type BudgetStatus struct {
	TeamUid     string
	TeamName    string
	Budget      float64
	TotalSpent  float64
	Utilization int
	AlertFlags  team.AlertFlags
}

type AlertService interface {
	// EvaluateTeam runs the alert state machine for one team, persists the
	// new flag state and delivers any resulting events.
	EvaluateTeam(ctx context.Context, teamUid string) (EvaluationResult, error)
	// EvaluateAll evaluates every team independently. One failing team never
	// aborts the batch.
	EvaluateAll(ctx context.Context) ([]EvaluationResult, error)
	BudgetStatus(ctx context.Context, teamUid string) (BudgetStatus, error)
}

type AlertServiceImpl struct {
	teamRepo    team.TeamRepo
	expenseRepo expense.ExpenseRepo
	thresholds  Thresholds
	notifiers   []Notifier
	clock       utils.Clock

	// teamLocks serializes the read-decide-write sequence per team so two
	// concurrent evaluations cannot both decide "not yet alerted".
	mu        sync.Mutex
	teamLocks map[int]*sync.Mutex
}

func NewAlertServiceImpl(teamRepo team.TeamRepo, expenseRepo expense.ExpenseRepo, thresholds Thresholds,
	notifiers []Notifier, clock utils.Clock) *AlertServiceImpl {
	return &AlertServiceImpl{
		teamRepo:    teamRepo,
		expenseRepo: expenseRepo,
		thresholds:  thresholds,
		notifiers:   notifiers,
		clock:       clock,
		teamLocks:   map[int]*sync.Mutex{},
	}
}

// SubscribeToExpenseEvents re-evaluates a team's budget whenever one of its
// expenses is approved, rejected, or changed after approval.
func (s *AlertServiceImpl) SubscribeToExpenseEvents(bus *event_bus.EventBus) {
	handler := func(e event_bus.EventT[event_bus.ExpenseStatusChanged]) error {
		_, err := s.evaluateTeamById(e.Context(), e.Data.TeamId)
		return err
	}
	event_bus.SubscribeTyped[event_bus.ExpenseStatusChanged](bus, event_bus.ExpenseApproved, handler)
	event_bus.SubscribeTyped[event_bus.ExpenseStatusChanged](bus, event_bus.ExpenseRejected, handler)
	event_bus.SubscribeTyped[event_bus.ExpenseStatusChanged](bus, event_bus.ExpenseChanged, handler)
}

func (s *AlertServiceImpl) EvaluateTeam(ctx context.Context, teamUid string) (EvaluationResult, error) {
	found, err := s.teamRepo.FindByUid(ctx, teamUid)
	if err != nil {
		return EvaluationResult{}, err
	}
	if found == nil {
		return EvaluationResult{TeamUid: teamUid, Success: false, Message: "team not found"}, nil
	}
	return s.evaluate(ctx, *found)
}

func (s *AlertServiceImpl) EvaluateAll(ctx context.Context) ([]EvaluationResult, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]EvaluationResult, 0, len(teams))
	for _, t := range teams {
		result, err := s.evaluate(ctx, t)
		if err != nil {
			log.Errorf("failed to evaluate team %s: %v", t.Uid, err)
			result = EvaluationResult{TeamUid: t.Uid, TeamName: t.Name, Success: false, Message: err.Error()}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *AlertServiceImpl) BudgetStatus(ctx context.Context, teamUid string) (BudgetStatus, error) {
	found, err := s.teamRepo.FindByUid(ctx, teamUid)
	if err != nil {
		return BudgetStatus{}, err
	}
	if found == nil {
		return BudgetStatus{}, team.ErrTeamNotFound
	}

	totalSpent, err := s.expenseRepo.TotalApproved(ctx, found.ID)
	if err != nil {
		return BudgetStatus{}, err
	}

	return BudgetStatus{
		TeamUid:     found.Uid,
		TeamName:    found.Name,
		Budget:      found.Budget,
		TotalSpent:  totalSpent,
		Utilization: Utilization(totalSpent, found.Budget),
		AlertFlags:  found.AlertFlags,
	}, nil
}

func (s *AlertServiceImpl) evaluateTeamById(ctx context.Context, teamId int) (EvaluationResult, error) {
	found, err := s.teamRepo.FindById(ctx, teamId)
	if err != nil {
		return EvaluationResult{}, err
	}
	if found == nil {
		return EvaluationResult{Success: false, Message: "team not found"}, nil
	}
	return s.evaluate(ctx, *found)
}

// evaluate applies the read-decide-write sequence for one team as a single
// atomic unit. Notification happens after the flag state is persisted and is
// never rolled back on delivery failure.
func (s *AlertServiceImpl) evaluate(ctx context.Context, t team.Team) (EvaluationResult, error) {
	if t.Budget <= 0 {
		return EvaluationResult{
			TeamUid: t.Uid, TeamName: t.Name,
			Success: false, Message: "team has no positive budget configured",
		}, nil
	}

	lock := s.lockFor(t.ID)
	lock.Lock()

	// Re-read inside the lock: the flags may have moved since the caller
	// loaded the team.
	current, err := s.teamRepo.FindById(ctx, t.ID)
	if err != nil {
		lock.Unlock()
		return EvaluationResult{}, err
	}
	if current == nil {
		lock.Unlock()
		return EvaluationResult{TeamUid: t.Uid, TeamName: t.Name, Success: false, Message: "team not found"}, nil
	}

	totalSpent, err := s.expenseRepo.TotalApproved(ctx, current.ID)
	if err != nil {
		lock.Unlock()
		return EvaluationResult{}, err
	}

	utilization := Utilization(totalSpent, current.Budget)
	decision := Decide(utilization, s.thresholds, current.AlertFlags)

	if decision.Flags != current.AlertFlags {
		updated, err := s.teamRepo.UpdateAlertFlags(ctx, current.ID, decision.Flags, current.AlertFlags)
		if err != nil {
			lock.Unlock()
			return EvaluationResult{}, err
		}
		if !updated {
			// Another process moved the flags first; its evaluation owns the
			// alert. Skip delivery to avoid a double send.
			lock.Unlock()
			log.Warnf("alert flags for team %s changed concurrently, skipping notification", current.Uid)
			return EvaluationResult{
				TeamUid: current.Uid, TeamName: current.Name,
				Success: true, Message: "evaluation superseded by a concurrent run",
				Utilization: utilization,
			}, nil
		}
	}
	lock.Unlock()

	events := make([]AlertEvent, 0, len(decision.Events))
	for _, event := range decision.Events {
		event.TeamUid = current.Uid
		event.TeamName = current.Name
		event.Timestamp = s.clock.Now()
		events = append(events, event)
		s.deliver(ctx, event)
	}

	return EvaluationResult{
		TeamUid: current.Uid, TeamName: current.Name,
		Success:     true,
		Utilization: utilization,
		Events:      events,
	}, nil
}

// deliver fans an event out to all notifiers. Failures are logged and
// reported nowhere else: delivery is a side effect of an already-persisted
// decision.
func (s *AlertServiceImpl) deliver(ctx context.Context, event AlertEvent) {
	for _, notifier := range s.notifiers {
		if err := notifier.SendAlert(ctx, event); err != nil {
			log.Errorf("notifier %s failed to deliver %s alert for team %s: %v",
				notifier.Name(), event.Level, event.TeamUid, err)
		}
	}
}

func (s *AlertServiceImpl) lockFor(teamId int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.teamLocks[teamId]
	if !ok {
		lock = &sync.Mutex{}
		s.teamLocks[teamId] = lock
	}
	return lock
}

var _ AlertService = (*AlertServiceImpl)(nil)
