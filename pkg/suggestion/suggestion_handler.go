package suggestion

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Klea100/Expense-management-system/internal/rest"
)

type SuggestionRequestDTO struct {
	Description string `json:"description"`
}

type SuggestionDTO struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Source     string  `json:"source"`
}

type SuggestionHandler struct {
	suggestionService SuggestionService
}

func NewSuggestionHandler(suggestionService SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService}
}

func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request SuggestionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if strings.TrimSpace(request.Description) == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Description must not be empty"})
		return
	}

	result := h.suggestionService.Suggest(r.Context(), request.Description)
	dto := SuggestionDTO{
		Category:   string(result.Category),
		Confidence: result.Confidence,
		Reasoning:  result.Reasoning,
		Source:     string(result.Source),
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
