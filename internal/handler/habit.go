package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
)

type HabitHandler struct {
	habitService  *service.HabitService
	lookupService *service.LookupService
}

func NewHabitHandler(habitService *service.HabitService, lookupService *service.LookupService) *HabitHandler {
	return &HabitHandler{
		habitService:  habitService,
		lookupService: lookupService,
	}
}

// List returns the requester's habits with frequency, time preference and
// owner resolved inline.
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	includeArchived := r.URL.Query().Get("archived") == "true"

	habits, err := h.habitService.Habits(user.ID, includeArchived)
	if err != nil {
		slog.Error("failed to list habits", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load habits")
		return
	}

	set, err := h.lookupService.Load(r.Context())
	if err != nil {
		slog.Error("failed to load lookups", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load habits")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"habits": service.EnrichHabits(habits, set)})
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Name             string  `json:"name"`
		FrequencyID      *string `json:"frequency_id"`
		TimePreferenceID *string `json:"time_preference_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	habit, err := h.habitService.Create(user.ID, req.Name, req.FrequencyID, req.TimePreferenceID)
	if err != nil {
		slog.Error("failed to create habit", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create habit")
		return
	}

	respondJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	habit, err := h.habitService.ByID(user.ID, habitID)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			respondError(w, http.StatusNotFound, "habit not found")
			return
		}
		slog.Error("failed to get habit", "error", err, "user_id", user.ID, "habit_id", habitID)
		respondError(w, http.StatusInternalServerError, "failed to load habit")
		return
	}

	set, err := h.lookupService.Load(r.Context())
	if err != nil {
		slog.Error("failed to load lookups", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load habit")
		return
	}

	respondJSON(w, http.StatusOK, service.EnrichHabit(habit, set))
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	var req struct {
		Name             string  `json:"name"`
		FrequencyID      *string `json:"frequency_id"`
		TimePreferenceID *string `json:"time_preference_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	habit, err := h.habitService.Update(user.ID, habitID, req.Name, req.FrequencyID, req.TimePreferenceID)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			respondError(w, http.StatusNotFound, "habit not found")
			return
		}
		slog.Error("failed to update habit", "error", err, "user_id", user.ID, "habit_id", habitID)
		respondError(w, http.StatusInternalServerError, "failed to update habit")
		return
	}

	respondJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	var req struct {
		Archived bool `json:"archived"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.habitService.SetArchived(user.ID, habitID, req.Archived)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			respondError(w, http.StatusNotFound, "habit not found")
			return
		}
		slog.Error("failed to archive habit", "error", err, "user_id", user.ID, "habit_id", habitID)
		respondError(w, http.StatusInternalServerError, "failed to archive habit")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"archived": req.Archived})
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	err := h.habitService.Delete(user.ID, habitID)
	if err != nil {
		if errors.Is(err, repository.ErrHabitNotFound) {
			respondError(w, http.StatusNotFound, "habit not found")
			return
		}
		slog.Error("failed to delete habit", "error", err, "user_id", user.ID, "habit_id", habitID)
		respondError(w, http.StatusInternalServerError, "failed to delete habit")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// CheckIn records today's completion. A second check-in on the same UTC day
// returns 409.
func (h *HabitHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	habitID := r.PathValue("id")

	habit, err := h.habitService.CheckIn(user.ID, habitID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHabitNotFound):
			respondError(w, http.StatusNotFound, "habit not found")
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			respondError(w, http.StatusConflict, "already checked in today")
		case errors.Is(err, service.ErrHabitArchived):
			respondError(w, http.StatusConflict, "habit is archived")
		default:
			slog.Error("failed to check in habit", "error", err, "user_id", user.ID, "habit_id", habitID)
			respondError(w, http.StatusInternalServerError, "failed to check in")
		}
		return
	}

	respondJSON(w, http.StatusOK, habit)
}
