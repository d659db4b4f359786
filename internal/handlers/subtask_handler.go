package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type SubtaskRepoForHandler interface {
	ListByTask(ctx context.Context, taskID int64) ([]*models.Subtask, error)
	Create(ctx context.Context, taskID int64, title string) (*models.Subtask, error)
	Update(ctx context.Context, id int64, p models.SubtaskPatch) (*models.Subtask, error)
	Delete(ctx context.Context, id int64) error
}

// SubtaskHandler serves /api/tasks/{id}/subtasks and /api/subtasks/{id}.
type SubtaskHandler struct {
	Repo   SubtaskRepoForHandler
	Logger *slog.Logger
}

func (h *SubtaskHandler) List(w http.ResponseWriter, r *http.Request) {
	subtasks, err := h.Repo.ListByTask(r.Context(), pathID(r))
	if err != nil {
		h.Logger.Error("list subtasks", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if subtasks == nil {
		subtasks = []*models.Subtask{}
	}
	writeJSON(w, http.StatusOK, subtasks)
}

func (h *SubtaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	subtask, err := h.Repo.Create(r.Context(), pathID(r), req.Title)
	if err != nil {
		writeRepoError(w, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusCreated, subtask)
}

func (h *SubtaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.SubtaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	subtask, err := h.Repo.Update(r.Context(), pathID(r), patch)
	if err != nil {
		writeRepoError(w, err, "Subtask not found")
		return
	}
	writeJSON(w, http.StatusOK, subtask)
}

func (h *SubtaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), pathID(r)); err != nil {
		writeRepoError(w, err, "Subtask not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
