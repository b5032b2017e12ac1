package handler

import (
	"log/slog"
	"net/http"

	"github.com/desperadoclub/desperado/internal/service"
)

// PipelineHandler serves the machine-facing build queue. Routes using it are
// guarded by a shared secret, not by user auth.
type PipelineHandler struct {
	feedbackService *service.FeedbackService
}

func NewPipelineHandler(feedbackService *service.FeedbackService) *PipelineHandler {
	return &PipelineHandler{
		feedbackService: feedbackService,
	}
}

// Queue returns the next page of queued feedback items, highest priority
// first.
func (h *PipelineHandler) Queue(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.feedbackService.Queue()
	if err != nil {
		slog.Error("failed to load pipeline queue", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load queue")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}
