package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
)

type GamificationHandler struct {
	gamificationService *service.GamificationService
	householdService    *service.HouseholdService
}

func NewGamificationHandler(gamificationService *service.GamificationService, householdService *service.HouseholdService) *GamificationHandler {
	return &GamificationHandler{
		gamificationService: gamificationService,
		householdService:    householdService,
	}
}

func (h *GamificationHandler) PartyGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.gamificationService.PartyGoals()
	if err != nil {
		slog.Error("failed to list party goals", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load party goals")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"party_goals": goals})
}

// UpsertPartyGoal marks a goal as a party goal. Reapplying with a new bonus
// updates the existing entry rather than creating a second one.
func (h *GamificationHandler) UpsertPartyGoal(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		GoalID  string `json:"goal_id"`
		XPBonus int    `json:"xp_bonus"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GoalID == "" {
		respondError(w, http.StatusBadRequest, "goal_id is required")
		return
	}
	if req.XPBonus < 0 {
		respondError(w, http.StatusBadRequest, "xp_bonus must not be negative")
		return
	}

	partyGoal, err := h.gamificationService.UpsertPartyGoal(user.ID, req.GoalID, req.XPBonus)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.Error("failed to upsert party goal", "error", err, "user_id", user.ID, "goal_id", req.GoalID)
		respondError(w, http.StatusInternalServerError, "failed to save party goal")
		return
	}

	respondJSON(w, http.StatusOK, partyGoal)
}

func (h *GamificationHandler) DeletePartyGoal(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("goalID")

	err := h.gamificationService.DeletePartyGoal(goalID)
	if err != nil {
		if errors.Is(err, repository.ErrPartyGoalNotFound) {
			respondError(w, http.StatusNotFound, "party goal not found")
			return
		}
		slog.Error("failed to delete party goal", "error", err, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to delete party goal")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Leaderboard ranks household members by XP.
func (h *GamificationHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())

	members, err := h.householdService.Members(membership.HouseholdID)
	if err != nil {
		slog.Error("failed to load leaderboard", "error", err, "household_id", membership.HouseholdID)
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	// Members come back in join order; rank by XP here.
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].XP > members[j].XP
	})

	respondJSON(w, http.StatusOK, map[string]any{"leaderboard": members})
}
