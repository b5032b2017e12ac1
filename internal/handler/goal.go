package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
)

type GoalHandler struct {
	goalService   *service.GoalService
	lookupService *service.LookupService
}

func NewGoalHandler(goalService *service.GoalService, lookupService *service.LookupService) *GoalHandler {
	return &GoalHandler{
		goalService:   goalService,
		lookupService: lookupService,
	}
}

type goalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	TargetDate  *time.Time `json:"target_date"`
	CategoryID  *string    `json:"category_id"`
	TimeframeID *string    `json:"timeframe_id"`
}

// List returns the requester's goals with category, timeframe and owner
// resolved inline.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}

	set, err := h.lookupService.Load(r.Context())
	if err != nil {
		slog.Error("failed to load lookups", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"goals": service.EnrichGoals(goals, set)})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Title, req.Description, req.TargetDate, req.CategoryID, req.TimeframeID)
	if err != nil {
		slog.Error("failed to create goal", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(user.ID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.Error("failed to get goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to load goal")
		return
	}

	set, err := h.lookupService.Load(r.Context())
	if err != nil {
		slog.Error("failed to load lookups", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load goal")
		return
	}

	respondJSON(w, http.StatusOK, service.EnrichGoal(goal, set))
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	goal, err := h.goalService.Update(user.ID, goalID, req.Title, req.Description, req.Status, req.TargetDate, req.CategoryID, req.TimeframeID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.Error("failed to update goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req struct {
		Progress int `json:"progress"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.UpdateProgress(user.ID, goalID, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGoalNotFound):
			respondError(w, http.StatusNotFound, "goal not found")
		case errors.Is(err, service.ErrInvalidProgress):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to update progress", "error", err, "user_id", user.ID, "goal_id", goalID)
			respondError(w, http.StatusInternalServerError, "failed to update progress")
		}
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(user.ID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.Error("failed to delete goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
