package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Klea100/Expense-management-system/internal/rest"
	"github.com/Klea100/Expense-management-system/pkg/team"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Uid         string  `json:"uid,omitempty"`
	TeamUid     string  `json:"teamUid,omitempty"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Date        string  `json:"date,omitempty"`
	Status      string  `json:"status,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type ExpenseHandler struct {
	expenseService ExpenseService
	teamService    team.TeamService
	csvRenderer    CsvReportRenderer
}

func NewExpenseHandler(expenseService ExpenseService, teamService team.TeamService, csvRenderer CsvReportRenderer) *ExpenseHandler {
	return &ExpenseHandler{expenseService, teamService, csvRenderer}
}

func (h *ExpenseHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Registering new expense")

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	owner, err := h.teamService.Get(r.Context(), dto.TeamUid)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(dto.Date) == 0 {
		dto.Date = time.Now().Format(time.RFC3339)
	}
	date, err := time.Parse(time.RFC3339, dto.Date)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "Date must be in RFC3339 format",
		})
		return
	}

	created, err := h.expenseService.Create(r.Context(), Expense{
		TeamID:      owner.ID,
		Amount:      dto.Amount,
		Description: dto.Description,
		Category:    Category(dto.Category),
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidCategory) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(created, dto.TeamUid)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["expenseUid"]

	found, err := h.expenseService.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(expenseToDTO(found, "")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *ExpenseHandler) GetForTeam(w http.ResponseWriter, r *http.Request) {
	teamUid := mux.Vars(r)["teamUid"]

	owner, err := h.teamService.Get(r.Context(), teamUid)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var since time.Time
	if sinceParam := r.URL.Query().Get("since"); sinceParam != "" {
		since, err = time.Parse(time.RFC3339, sinceParam)
		if err != nil {
			http.Error(w, "Invalid since format, expected RFC3339", http.StatusBadRequest)
			return
		}
	}

	var statuses []Status
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status, ok := ParseStatus(statusParam)
		if !ok {
			http.Error(w, "Invalid status filter", http.StatusBadRequest)
			return
		}
		statuses = append(statuses, status)
	}

	expenses, err := h.expenseService.GetForTeam(r.Context(), owner.ID, since, statuses)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		report, err := h.csvRenderer.RenderExpenses(expenses)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=expenses.csv")
		_, _ = w.Write([]byte(report))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, expenseToDTO(e, teamUid))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["expenseUid"]

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if dto.Uid != "" && dto.Uid != uid {
		http.Error(w, "Invalid expense uid in request body", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if dto.Date != "" {
		var err error
		date, err = time.Parse(time.RFC3339, dto.Date)
		if err != nil {
			http.Error(w, "Invalid date format, expected RFC3339", http.StatusBadRequest)
			return
		}
	}

	updated, err := h.expenseService.Update(r.Context(), Expense{
		Uid:         uid,
		Amount:      dto.Amount,
		Description: dto.Description,
		Category:    Category(dto.Category),
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrExpenseNotFound):
			http.Error(w, "expense not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidCategory):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(expenseToDTO(updated, "")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *ExpenseHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["expenseUid"]

	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	updated, err := h.expenseService.SetStatus(r.Context(), uid, Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrExpenseNotFound):
			http.Error(w, "expense not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidStatus):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(expenseToDTO(updated, "")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["expenseUid"]

	if _, err := h.expenseService.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func expenseToDTO(e Expense, teamUid string) ExpenseDTO {
	return ExpenseDTO{
		Uid:         e.Uid,
		TeamUid:     teamUid,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    string(e.Category),
		Date:        e.Date.Format(time.RFC3339),
		Status:      string(e.Status),
	}
}
