package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Klea100/Expense-management-system/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidAmount   = errors.New("expense amount must be positive")
	ErrInvalidCategory = errors.New("unknown expense category")
	ErrInvalidStatus   = errors.New("unknown expense status")
)

type ExpenseService interface {
	Create(ctx context.Context, expense Expense) (Expense, error)
	Get(ctx context.Context, uid string) (Expense, error)
	GetForTeam(ctx context.Context, teamId int, since time.Time, statuses []Status) ([]Expense, error)
	Update(ctx context.Context, expense Expense) (Expense, error)
	// SetStatus transitions the expense and publishes an event on approval
	// or rejection so the alert engine can re-evaluate the team budget.
	SetStatus(ctx context.Context, uid string, status Status) (Expense, error)
	Delete(ctx context.Context, uid string) (bool, error)
	TotalApproved(ctx context.Context, teamId int) (float64, error)
}

type ExpenseServiceImpl struct {
	repo ExpenseRepo
	bus  *event_bus.EventBus
}

func NewExpenseServiceImpl(repo ExpenseRepo, bus *event_bus.EventBus) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{repo: repo, bus: bus}
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	if err := validate(expense); err != nil {
		return Expense{}, err
	}
	expense.Uid = uuid.NewString()
	if expense.Status == "" {
		expense.Status = StatusPending
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	return s.repo.Store(ctx, expense)
}

func (s *ExpenseServiceImpl) Get(ctx context.Context, uid string) (Expense, error) {
	found, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return Expense{}, err
	}
	if found == nil {
		return Expense{}, ErrExpenseNotFound
	}
	return *found, nil
}

func (s *ExpenseServiceImpl) GetForTeam(ctx context.Context, teamId int, since time.Time, statuses []Status) ([]Expense, error) {
	return s.repo.FindByTeam(ctx, teamId, since, statuses)
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, expense Expense) (Expense, error) {
	if err := validate(expense); err != nil {
		return Expense{}, err
	}
	existing, err := s.repo.FindByUid(ctx, expense.Uid)
	if err != nil {
		return Expense{}, err
	}
	if existing == nil {
		return Expense{}, ErrExpenseNotFound
	}
	expense.ID = existing.ID
	expense.TeamID = existing.TeamID
	expense.Status = existing.Status

	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s)", expense.Uid)
		return Expense{}, fmt.Errorf("expense not updated")
	}

	// an approved expense keeps counting towards the budget, so an amount
	// change has to re-trigger evaluation
	if expense.Status == StatusApproved {
		s.publish(ctx, event_bus.ExpenseChanged, expense)
	}
	return expense, nil
}

func (s *ExpenseServiceImpl) SetStatus(ctx context.Context, uid string, status Status) (Expense, error) {
	if _, ok := ParseStatus(string(status)); !ok {
		return Expense{}, ErrInvalidStatus
	}
	existing, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return Expense{}, err
	}
	if existing == nil {
		return Expense{}, ErrExpenseNotFound
	}

	updated, err := s.repo.UpdateStatus(ctx, existing.ID, status)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		return Expense{}, fmt.Errorf("expense status not updated")
	}
	existing.Status = status

	s.publishStatusChange(ctx, *existing)

	return *existing, nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	existing, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, ErrExpenseNotFound
	}

	deleted, err := s.repo.Delete(ctx, existing.ID)
	if err != nil {
		return false, err
	}
	if deleted && existing.Status == StatusApproved {
		s.publish(ctx, event_bus.ExpenseChanged, *existing)
	}
	return deleted, nil
}

func (s *ExpenseServiceImpl) TotalApproved(ctx context.Context, teamId int) (float64, error) {
	return s.repo.TotalApproved(ctx, teamId)
}

// publishStatusChange notifies bus subscribers about approvals and rejections.
func (s *ExpenseServiceImpl) publishStatusChange(ctx context.Context, expense Expense) {
	switch expense.Status {
	case StatusApproved:
		s.publish(ctx, event_bus.ExpenseApproved, expense)
	case StatusRejected:
		s.publish(ctx, event_bus.ExpenseRejected, expense)
	}
}

// publish sends an expense event on the bus. Subscriber failures are logged
// and never surfaced to the caller: the repo write is already persisted.
func (s *ExpenseServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, expense Expense) {
	if s.bus == nil {
		return
	}
	payload := event_bus.ExpenseStatusChanged{
		ExpenseId:  expense.ID,
		ExpenseUid: expense.Uid,
		TeamId:     expense.TeamID,
		Amount:     expense.Amount,
		Category:   string(expense.Category),
		Date:       expense.Date,
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, payload)); err != nil {
		log.Errorf("failed to publish %s event for expense %s: %v", eventType, expense.Uid, err)
	}
}

func validate(expense Expense) error {
	if expense.Amount <= 0 {
		return ErrInvalidAmount
	}
	if expense.Category != "" {
		if _, ok := ParseCategory(string(expense.Category)); !ok {
			return ErrInvalidCategory
		}
	}
	return nil
}
