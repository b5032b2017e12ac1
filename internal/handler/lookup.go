package handler

import (
	"log/slog"
	"net/http"

	"github.com/desperadoclub/desperado/internal/service"
)

type LookupHandler struct {
	lookupService *service.LookupService
	userService   *service.UserService
}

func NewLookupHandler(lookupService *service.LookupService, userService *service.UserService) *LookupHandler {
	return &LookupHandler{
		lookupService: lookupService,
		userService:   userService,
	}
}

// List returns all active reference tables keyed by id.
func (h *LookupHandler) List(w http.ResponseWriter, r *http.Request) {
	set, err := h.lookupService.Load(r.Context())
	if err != nil {
		slog.Error("failed to load lookups", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load lookups")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"categories":       set.Categories,
		"timeframes":       set.Timeframes,
		"frequencies":      set.Frequencies,
		"time_preferences": set.TimePreferences,
	})
}

// Users returns the user directory as public summaries.
func (h *LookupHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Directory(r.Context())
	if err != nil {
		slog.Error("failed to load user directory", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}
