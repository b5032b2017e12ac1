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

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type taskRequest struct {
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
	AssignedTo *string    `json:"assigned_to"`
	Completed  bool       `json:"completed"`
	DueDate    *time.Time `json:"due_date"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	membership := ctxkeys.Membership(r.Context())

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := h.taskService.Create(membership.HouseholdID, user.ID, req.Title, req.Notes, req.AssignedTo, req.DueDate)
	if err != nil {
		slog.Error("failed to create task", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())

	tasks, err := h.taskService.Tasks(membership.HouseholdID)
	if err != nil {
		slog.Error("failed to list tasks", "error", err, "household_id", membership.HouseholdID)
		respondError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())
	taskID := r.PathValue("id")

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := h.taskService.Update(membership.HouseholdID, taskID, req.Title, req.Notes, req.AssignedTo, req.Completed, req.DueDate)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		slog.Error("failed to update task", "error", err, "task_id", taskID)
		respondError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())
	taskID := r.PathValue("id")

	err := h.taskService.Delete(membership.HouseholdID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		slog.Error("failed to delete task", "error", err, "task_id", taskID)
		respondError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
