package app

import (
	"github.com/Klea100/Expense-management-system/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Teams
	r.HandleFunc("/api/team", deps.TeamHandler.Register).Methods("POST")
	r.HandleFunc("/api/team", deps.TeamHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/team/{teamUid}", deps.TeamHandler.Get).Methods("GET")
	r.HandleFunc("/api/team/{teamUid}", deps.TeamHandler.Update).Methods("PUT")
	r.HandleFunc("/api/team/{teamUid}", deps.TeamHandler.Delete).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Register).Methods("POST")
	r.HandleFunc("/api/expense/{expenseUid}", deps.ExpenseHandler.Get).Methods("GET")
	r.HandleFunc("/api/expense/{expenseUid}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{expenseUid}", deps.ExpenseHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/expense/{expenseUid}/status", deps.ExpenseHandler.SetStatus).Methods("PATCH")
	r.HandleFunc("/api/team/{teamUid}/expense", deps.ExpenseHandler.GetForTeam).Methods("GET")

	// Budget alerts
	r.HandleFunc("/api/alerts/evaluate", deps.AlertHandler.EvaluateAll).Methods("POST")
	r.HandleFunc("/api/team/{teamUid}/evaluate", deps.AlertHandler.EvaluateTeam).Methods("POST")
	r.HandleFunc("/api/team/{teamUid}/budget-status", deps.AlertHandler.BudgetStatus).Methods("GET")

	// Analysis
	r.HandleFunc("/api/team/{teamUid}/forecast", deps.ForecastHandler.Get).Methods("GET")
	r.HandleFunc("/api/team/{teamUid}/anomalies", deps.AnomalyHandler.GetForTeam).Methods("GET")

	// Category suggestion
	r.HandleFunc("/api/suggestion", deps.SuggestionHandler.Suggest).Methods("POST")
}
