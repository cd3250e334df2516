package team

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Klea100/Expense-management-system/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TeamDTO struct {
	Uid        string        `json:"uid,omitempty"`
	Name       string        `json:"name"`
	Budget     float64       `json:"budget"`
	AlertFlags AlertFlagsDTO `json:"alertFlags"`
}

type AlertFlagsDTO struct {
	Warning  bool `json:"warning"`
	Critical bool `json:"critical"`
}

type TeamHandler struct {
	teamService TeamService
}

func NewTeamHandler(teamService TeamService) *TeamHandler {
	return &TeamHandler{teamService}
}

func (handler *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new team")
	w.Header().Set("Content-Type", "application/json")

	var teamDTO TeamDTO
	if err := json.NewDecoder(r.Body).Decode(&teamDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdTeam, err := handler.teamService.Create(r.Context(), dtoToTeam(teamDTO))
	if err != nil {
		if errors.Is(err, ErrInvalidBudget) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(teamToDTO(createdTeam)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *TeamHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	teams, err := handler.teamService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	teamsDTO := make([]TeamDTO, 0, len(teams))
	for _, t := range teams {
		teamsDTO = append(teamsDTO, teamToDTO(t))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(teamsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["teamUid"]

	found, err := handler.teamService.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(teamToDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["teamUid"]

	var teamDTO TeamDTO
	if err := json.NewDecoder(r.Body).Decode(&teamDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if teamDTO.Uid != "" && teamDTO.Uid != uid {
		http.Error(w, "Invalid team uid in request body", http.StatusBadRequest)
		return
	}
	teamDTO.Uid = uid

	updatedTeam, err := handler.teamService.Update(r.Context(), dtoToTeam(teamDTO))
	if err != nil {
		switch {
		case errors.Is(err, ErrTeamNotFound):
			http.Error(w, "team not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidBudget):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(teamToDTO(updatedTeam)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["teamUid"]

	if _, err := handler.teamService.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func teamToDTO(t Team) TeamDTO {
	return TeamDTO{
		Uid:    t.Uid,
		Name:   t.Name,
		Budget: t.Budget,
		AlertFlags: AlertFlagsDTO{
			Warning:  t.AlertFlags.Warning,
			Critical: t.AlertFlags.Critical,
		},
	}
}

func dtoToTeam(dto TeamDTO) Team {
	return Team{
		Uid:    dto.Uid,
		Name:   dto.Name,
		Budget: dto.Budget,
		AlertFlags: AlertFlags{
			Warning:  dto.AlertFlags.Warning,
			Critical: dto.AlertFlags.Critical,
		},
	}
}
