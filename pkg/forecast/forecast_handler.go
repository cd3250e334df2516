package forecast

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Klea100/Expense-management-system/pkg/team"
	"github.com/gorilla/mux"
)

type RecommendationDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type ForecastDTO struct {
	AvgDailySpend        float64             `json:"avgDailySpend"`
	ProjectedSpend       float64             `json:"projectedSpend"`
	ProjectedTotal       float64             `json:"projectedTotal"`
	ProjectedUtilization int                 `json:"projectedUtilization"`
	TrendDirection       string              `json:"trendDirection"`
	TrendStrength        string              `json:"trendStrength"`
	Confidence           string              `json:"confidence"`
	Recommendations      []RecommendationDTO `json:"recommendations"`
}

type ForecastHandler struct {
	forecastService ForecastService
}

func NewForecastHandler(forecastService ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService}
}

func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	teamUid := mux.Vars(r)["teamUid"]

	result, err := h.forecastService.ForecastTeam(r.Context(), teamUid)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, team.ErrInvalidBudget) {
			http.Error(w, "team has no budget to forecast against", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(forecastToDTO(*result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func forecastToDTO(result Result) ForecastDTO {
	recommendations := make([]RecommendationDTO, 0, len(result.Recommendations))
	for _, recommendation := range result.Recommendations {
		recommendations = append(recommendations, RecommendationDTO{
			Type:    string(recommendation.Type),
			Message: recommendation.Message,
			Action:  recommendation.Action,
		})
	}
	return ForecastDTO{
		AvgDailySpend:        result.AvgDailySpend,
		ProjectedSpend:       result.ProjectedSpend,
		ProjectedTotal:       result.ProjectedTotal,
		ProjectedUtilization: result.ProjectedUtilization,
		TrendDirection:       string(result.TrendDirection),
		TrendStrength:        string(result.TrendStrength),
		Confidence:           string(result.Confidence),
		Recommendations:      recommendations,
	}
}
