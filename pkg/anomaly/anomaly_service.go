package anomaly

import (
	"context"
	"fmt"

	"github.com/Klea100/Expense-management-system/internal/config"
	"github.com/Klea100/Expense-management-system/internal/utils"
	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/Klea100/Expense-management-system/pkg/team"
	log "github.com/sirupsen/logrus"
)

type AnomalyService interface {
	DetectForTeam(ctx context.Context, teamUid string) ([]Finding, error)
}

type AnomalyServiceImpl struct {
	teamRepo    team.TeamRepo
	expenseRepo expense.ExpenseRepo
	cfg         config.Anomaly
	clock       utils.Clock
}

func NewAnomalyServiceImpl(teamRepo team.TeamRepo, expenseRepo expense.ExpenseRepo,
	cfg config.Anomaly, clock utils.Clock) *AnomalyServiceImpl {
	return &AnomalyServiceImpl{
		teamRepo:    teamRepo,
		expenseRepo: expenseRepo,
		cfg:         cfg,
		clock:       clock,
	}
}

// DetectForTeam inspects the team's pending and approved expenses in the
// lookback window. Rejected expenses are excluded: they were already caught.
func (s *AnomalyServiceImpl) DetectForTeam(ctx context.Context, teamUid string) ([]Finding, error) {
	found, err := s.teamRepo.FindByUid(ctx, teamUid)
	if err != nil {
		log.Errorf("Error fetching team %s for anomaly detection: %v", teamUid, err)
		return nil, err
	}
	if found == nil {
		return nil, team.ErrTeamNotFound
	}

	since := s.clock.Now().AddDate(0, 0, -s.cfg.LookbackDays)
	expenses, err := s.expenseRepo.FindByTeam(ctx, found.ID, since,
		[]expense.Status{expense.StatusPending, expense.StatusApproved})
	if err != nil {
		log.Errorf("Error fetching expenses for team %s anomaly detection: %v", teamUid, err)
		return nil, fmt.Errorf("fetching expenses for anomaly detection: %w", err)
	}

	return Detect(expenses), nil
}

var _ AnomalyService = (*AnomalyServiceImpl)(nil)
