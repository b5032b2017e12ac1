package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Type     string `json:"type"`
		Body     string `json:"body"`
		Priority *int   `json:"priority"`
		Tags     string `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Body == "" {
		respondError(w, http.StatusBadRequest, "body is required")
		return
	}

	item, err := h.feedbackService.Create(user.ID, req.Type, req.Body, req.Priority, req.Tags)
	if err != nil {
		slog.Error("failed to create feedback", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create feedback")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedbackService.List()
	if err != nil {
		slog.Error("failed to list feedback", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"feedback": items})
}

var validStatuses = map[string]bool{
	model.FeedbackStatusOpen:    true,
	model.FeedbackStatusPlanned: true,
	model.FeedbackStatusDone:    true,
}

var validPipelineStatuses = map[string]bool{
	model.PipelineStatusNone:     true,
	model.PipelineStatusQueued:   true,
	model.PipelineStatusBuilding: true,
	model.PipelineStatusShipped:  true,
}

func (h *FeedbackHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	feedbackID := r.PathValue("id")

	var req struct {
		Status         string `json:"status"`
		PipelineStatus string `json:"pipeline_status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validStatuses[req.Status] {
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if !validPipelineStatuses[req.PipelineStatus] {
		respondError(w, http.StatusBadRequest, "invalid pipeline status")
		return
	}

	item, err := h.feedbackService.SetStatus(r.Context(), feedbackID, req.Status, req.PipelineStatus)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			respondError(w, http.StatusNotFound, "feedback not found")
			return
		}
		slog.Error("failed to set feedback status", "error", err, "feedback_id", feedbackID)
		respondError(w, http.StatusInternalServerError, "failed to update feedback")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// ToggleVote flips the requester's vote. 201 means the vote now exists,
// 200 means it was removed; both carry the item's new vote total.
func (h *FeedbackHandler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	feedbackID := r.PathValue("id")

	voted, votes, err := h.feedbackService.ToggleVote(feedbackID, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			respondError(w, http.StatusNotFound, "feedback not found")
			return
		}
		slog.Error("failed to toggle vote", "error", err, "feedback_id", feedbackID, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to toggle vote")
		return
	}

	status := http.StatusOK
	if voted {
		status = http.StatusCreated
	}
	respondJSON(w, status, map[string]any{"voted": voted, "votes": votes})
}
