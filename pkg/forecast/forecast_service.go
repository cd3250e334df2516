package forecast

import (
	"context"
	"fmt"

	"github.com/Klea100/Expense-management-system/internal/config"
	"github.com/Klea100/Expense-management-system/internal/utils"
	"github.com/Klea100/Expense-management-system/pkg/alerting"
	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/Klea100/Expense-management-system/pkg/team"
	log "github.com/sirupsen/logrus"
)

type ForecastService interface {
	ForecastTeam(ctx context.Context, teamUid string) (*Result, error)
}

type ForecastServiceImpl struct {
	teamRepo    team.TeamRepo
	expenseRepo expense.ExpenseRepo
	cfg         config.Forecast
	thresholds  alerting.Thresholds
	clock       utils.Clock
}

func NewForecastServiceImpl(teamRepo team.TeamRepo, expenseRepo expense.ExpenseRepo,
	cfg config.Forecast, thresholds alerting.Thresholds, clock utils.Clock) *ForecastServiceImpl {
	return &ForecastServiceImpl{
		teamRepo:    teamRepo,
		expenseRepo: expenseRepo,
		cfg:         cfg,
		thresholds:  thresholds,
		clock:       clock,
	}
}

// ForecastTeam projects the team's spending over the configured window from
// approved expenses in the lookback period.
func (s *ForecastServiceImpl) ForecastTeam(ctx context.Context, teamUid string) (*Result, error) {
	found, err := s.teamRepo.FindByUid(ctx, teamUid)
	if err != nil {
		log.Errorf("Error fetching team %s for forecast: %v", teamUid, err)
		return nil, err
	}
	if found == nil {
		return nil, team.ErrTeamNotFound
	}
	if found.Budget <= 0 {
		return nil, team.ErrInvalidBudget
	}

	since := s.clock.Now().AddDate(0, 0, -s.cfg.LookbackDays)
	recent, err := s.expenseRepo.FindByTeam(ctx, found.ID, since, []expense.Status{expense.StatusApproved})
	if err != nil {
		log.Errorf("Error fetching expenses for team %s forecast: %v", teamUid, err)
		return nil, fmt.Errorf("fetching expenses for forecast: %w", err)
	}

	totalSpent, err := s.expenseRepo.TotalApproved(ctx, found.ID)
	if err != nil {
		log.Errorf("Error fetching approved total for team %s forecast: %v", teamUid, err)
		return nil, fmt.Errorf("fetching approved total for forecast: %w", err)
	}

	result := Compute(recent, totalSpent, found.Budget, s.cfg.WindowDays, s.thresholds)
	return &result, nil
}

var _ ForecastService = (*ForecastServiceImpl)(nil)
