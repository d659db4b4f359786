package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type ArtifactRepoForHandler interface {
	ListByTask(ctx context.Context, taskID int64) ([]*models.Artifact, error)
	ListAll(ctx context.Context) ([]*models.ArtifactWithTask, error)
	Create(ctx context.Context, taskID int64, name, url, typ string) (*models.Artifact, error)
	Delete(ctx context.Context, id int64) error
}

// ArtifactHandler serves the artifact endpoints.
type ArtifactHandler struct {
	Repo   ArtifactRepoForHandler
	Logger *slog.Logger
}

func (h *ArtifactHandler) List(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.Repo.ListByTask(r.Context(), pathID(r))
	if err != nil {
		h.Logger.Error("list artifacts", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if artifacts == nil {
		artifacts = []*models.Artifact{}
	}
	writeJSON(w, http.StatusOK, artifacts)
}

// ListAll handles GET /api/artifacts: every artifact joined with its task's
// title and project, newest first.
func (h *ArtifactHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.Repo.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("list all artifacts", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if artifacts == nil {
		artifacts = []*models.ArtifactWithTask{}
	}
	writeJSON(w, http.StatusOK, artifacts)
}

func (h *ArtifactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		URL  string `json:"url"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "Type is required")
		return
	}
	artifact, err := h.Repo.Create(r.Context(), pathID(r), req.Name, req.URL, req.Type)
	if err != nil {
		writeRepoError(w, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusCreated, artifact)
}

func (h *ArtifactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), pathID(r)); err != nil {
		writeRepoError(w, err, "Artifact not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
