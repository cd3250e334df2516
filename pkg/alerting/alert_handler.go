package alerting

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Klea100/Expense-management-system/pkg/team"
	"github.com/gorilla/mux"
)

type AlertEventDTO struct {
	TeamUid     string `json:"teamUid"`
	TeamName    string `json:"teamName"`
	Level       string `json:"level"`
	Utilization int    `json:"utilization"`
	Timestamp   string `json:"timestamp"`
}

type EvaluationResultDTO struct {
	TeamUid     string          `json:"teamUid"`
	TeamName    string          `json:"teamName,omitempty"`
	Success     bool            `json:"success"`
	Message     string          `json:"message,omitempty"`
	Utilization int             `json:"utilization"`
	Events      []AlertEventDTO `json:"events"`
}

type BudgetStatusDTO struct {
	TeamUid     string             `json:"teamUid"`
	TeamName    string             `json:"teamName"`
	Budget      float64            `json:"budget"`
	TotalSpent  float64            `json:"totalSpent"`
	Utilization int                `json:"utilization"`
	AlertFlags  team.AlertFlagsDTO `json:"alertFlags"`
}

type AlertHandler struct {
	alertService AlertService
}

func NewAlertHandler(alertService AlertService) *AlertHandler {
	return &AlertHandler{alertService}
}

func (h *AlertHandler) EvaluateAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	results, err := h.alertService.EvaluateAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EvaluationResultDTO, 0, len(results))
	for _, result := range results {
		dtos = append(dtos, evaluationResultToDTO(result))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *AlertHandler) EvaluateTeam(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	teamUid := mux.Vars(r)["teamUid"]

	result, err := h.alertService.EvaluateTeam(r.Context(), teamUid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(evaluationResultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *AlertHandler) BudgetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	teamUid := mux.Vars(r)["teamUid"]

	status, err := h.alertService.BudgetStatus(r.Context(), teamUid)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := BudgetStatusDTO{
		TeamUid:     status.TeamUid,
		TeamName:    status.TeamName,
		Budget:      status.Budget,
		TotalSpent:  status.TotalSpent,
		Utilization: status.Utilization,
		AlertFlags: team.AlertFlagsDTO{
			Warning:  status.AlertFlags.Warning,
			Critical: status.AlertFlags.Critical,
		},
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func evaluationResultToDTO(result EvaluationResult) EvaluationResultDTO {
	events := make([]AlertEventDTO, 0, len(result.Events))
	for _, event := range result.Events {
		events = append(events, AlertEventDTO{
			TeamUid:     event.TeamUid,
			TeamName:    event.TeamName,
			Level:       string(event.Level),
			Utilization: event.Utilization,
			Timestamp:   event.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return EvaluationResultDTO{
		TeamUid:     result.TeamUid,
		TeamName:    result.TeamName,
		Success:     result.Success,
		Message:     result.Message,
		Utilization: result.Utilization,
		Events:      events,
	}
}
