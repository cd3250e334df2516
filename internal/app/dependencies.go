package app

import (
	"database/sql"

	"github.com/Klea100/Expense-management-system/internal/config"
	"github.com/Klea100/Expense-management-system/internal/event_bus"
	"github.com/Klea100/Expense-management-system/internal/utils"
	"github.com/Klea100/Expense-management-system/pkg/alerting"
	"github.com/Klea100/Expense-management-system/pkg/anomaly"
	"github.com/Klea100/Expense-management-system/pkg/expense"
	"github.com/Klea100/Expense-management-system/pkg/forecast"
	"github.com/Klea100/Expense-management-system/pkg/suggestion"
	"github.com/Klea100/Expense-management-system/pkg/team"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	TeamRepo    team.TeamRepo
	TeamService team.TeamService
	TeamHandler *team.TeamHandler

	ExpenseRepo       expense.ExpenseRepo
	ExpenseService    expense.ExpenseService
	CsvReportRenderer expense.CsvReportRenderer
	ExpenseHandler    *expense.ExpenseHandler

	Notifiers    []alerting.Notifier
	AlertService alerting.AlertService
	AlertHandler *alerting.AlertHandler

	ForecastService forecast.ForecastService
	ForecastHandler *forecast.ForecastHandler

	AnomalyService anomaly.AnomalyService
	AnomalyHandler *anomaly.AnomalyHandler

	SuggestionService suggestion.SuggestionService
	SuggestionHandler *suggestion.SuggestionHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.TeamRepo = team.NewTeamRepo(db)
	deps.TeamService = team.NewTeamServiceImpl(deps.TeamRepo)
	deps.TeamHandler = team.NewTeamHandler(deps.TeamService)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseServiceImpl(deps.ExpenseRepo, deps.EventBus)
	deps.CsvReportRenderer = expense.NewCsvReportRenderer()
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService, deps.TeamService, deps.CsvReportRenderer)

	thresholds := alerting.Thresholds{
		Warning:  cfg.Alerting.WarningThreshold,
		Critical: cfg.Alerting.CriticalThreshold,
	}
	deps.Notifiers = []alerting.Notifier{alerting.NewLogNotifier()}
	if cfg.Notifier.WebhookURL != "" {
		deps.Notifiers = append(deps.Notifiers, alerting.NewWebhookNotifier(cfg.Notifier.WebhookURL, cfg.Notifier.WebhookSecret))
	}
	alertService := alerting.NewAlertServiceImpl(deps.TeamRepo, deps.ExpenseRepo, thresholds, deps.Notifiers, deps.Clock)
	alertService.SubscribeToExpenseEvents(deps.EventBus)
	deps.AlertService = alertService
	deps.AlertHandler = alerting.NewAlertHandler(deps.AlertService)

	deps.ForecastService = forecast.NewForecastServiceImpl(deps.TeamRepo, deps.ExpenseRepo, cfg.Forecast, thresholds, deps.Clock)
	deps.ForecastHandler = forecast.NewForecastHandler(deps.ForecastService)

	deps.AnomalyService = anomaly.NewAnomalyServiceImpl(deps.TeamRepo, deps.ExpenseRepo, cfg.Anomaly, deps.Clock)
	deps.AnomalyHandler = anomaly.NewAnomalyHandler(deps.AnomalyService)

	var classifier suggestion.Classifier
	if cfg.Classifier.URL != "" {
		classifier = suggestion.NewHTTPClassifier(cfg.Classifier)
	}
	deps.SuggestionService = suggestion.NewSuggestionServiceImpl(classifier)
	deps.SuggestionHandler = suggestion.NewSuggestionHandler(deps.SuggestionService)

	return deps
}
