package anomaly

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Klea100/Expense-management-system/pkg/team"
	"github.com/gorilla/mux"
)

type FindingDTO struct {
	Type        string   `json:"type"`
	ExpenseUids []string `json:"expenseUids"`
	Reason      string   `json:"reason"`
	Confidence  float64  `json:"confidence"`
}

type AnomalyHandler struct {
	anomalyService AnomalyService
}

func NewAnomalyHandler(anomalyService AnomalyService) *AnomalyHandler {
	return &AnomalyHandler{anomalyService}
}

func (h *AnomalyHandler) GetForTeam(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	teamUid := mux.Vars(r)["teamUid"]

	findings, err := h.anomalyService.DetectForTeam(r.Context(), teamUid)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]FindingDTO, 0, len(findings))
	for _, finding := range findings {
		dtos = append(dtos, FindingDTO{
			Type:        string(finding.Type),
			ExpenseUids: finding.ExpenseUids,
			Reason:      finding.Reason,
			Confidence:  finding.Confidence,
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
