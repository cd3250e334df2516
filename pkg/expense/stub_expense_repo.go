package expense

import (
	"context"
	"time"
)

type StubExpenseRepo struct {
	nextId int
	data   map[int]Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{nextId: 0, data: map[int]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, expense Expense) (Expense, error) {
	s.nextId++
	expense.ID = s.nextId
	s.data[expense.ID] = expense
	return expense, nil
}

func (s *StubExpenseRepo) FindByUid(ctx context.Context, uid string) (*Expense, error) {
	for _, e := range s.data {
		if e.Uid == uid {
			return &e, nil
		}
	}
	return nil, nil
}

func (s *StubExpenseRepo) FindByTeam(ctx context.Context, teamId int, since time.Time, statuses []Status) ([]Expense, error) {
	var expenses []Expense
	for _, e := range s.data {
		if e.TeamID != teamId || e.Date.Before(since) {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, e.Status) {
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (s *StubExpenseRepo) TotalApproved(ctx context.Context, teamId int) (float64, error) {
	total := 0.0
	for _, e := range s.data {
		if e.TeamID == teamId && e.Status == StatusApproved {
			total += e.Amount
		}
	}
	return total, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, expense Expense) (bool, error) {
	if _, ok := s.data[expense.ID]; !ok {
		return false, nil
	}
	s.data[expense.ID] = expense
	return true, nil
}

func (s *StubExpenseRepo) UpdateStatus(ctx context.Context, expenseId int, status Status) (bool, error) {
	existing, ok := s.data[expenseId]
	if !ok {
		return false, nil
	}
	existing.Status = status
	s.data[expenseId] = existing
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, expenseId int) (bool, error) {
	if _, ok := s.data[expenseId]; !ok {
		return false, nil
	}
	delete(s.data, expenseId)
	return true, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[int]Expense{}
}

func containsStatus(statuses []Status, status Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
