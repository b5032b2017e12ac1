package handler

import (
	"log/slog"
	"net/http"

	"github.com/desperadoclub/desperado/internal/service"
)

// CronHandler serves scheduled jobs triggered by an external scheduler.
// Routes using it are guarded by a shared secret.
type CronHandler struct {
	habitService *service.HabitService
}

func NewCronHandler(habitService *service.HabitService) *CronHandler {
	return &CronHandler{
		habitService: habitService,
	}
}

// StreakCheck resets streaks for daily habits that missed yesterday's
// check-in window and reports what it did.
func (h *CronHandler) StreakCheck(w http.ResponseWriter, r *http.Request) {
	report, err := h.habitService.StreakCheck(r.Context())
	if err != nil {
		slog.Error("streak check failed", "error", err)
		respondError(w, http.StatusInternalServerError, "streak check failed")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
