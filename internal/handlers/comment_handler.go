package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type CommentRepoForHandler interface {
	ListByTask(ctx context.Context, taskID int64) ([]*models.Comment, error)
	Create(ctx context.Context, taskID int64, author, content string) (*models.Comment, error)
	ListUnread(ctx context.Context) ([]*models.UnreadComment, error)
	MarkRead(ctx context.Context, id int64) (*models.Comment, error)
}

// CommentHandler serves the comment endpoints, including the unread feed the
// agent polls between sessions.
type CommentHandler struct {
	Repo   CommentRepoForHandler
	Logger *slog.Logger
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.Repo.ListByTask(r.Context(), pathID(r))
	if err != nil {
		h.Logger.Error("list comments", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	if req.Author == "" {
		writeError(w, http.StatusBadRequest, "Author is required")
		return
	}
	comment, err := h.Repo.Create(r.Context(), pathID(r), req.Author, req.Content)
	if err != nil {
		writeRepoError(w, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Unread handles GET /api/comments/unread: human-authored comments the agent
// has not yet acknowledged.
func (h *CommentHandler) Unread(w http.ResponseWriter, r *http.Request) {
	comments, err := h.Repo.ListUnread(r.Context())
	if err != nil {
		h.Logger.Error("list unread comments", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if comments == nil {
		comments = []*models.UnreadComment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// MarkRead handles PUT /api/comments/{id}/read. Marking an already-read
// comment succeeds unchanged.
func (h *CommentHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	comment, err := h.Repo.MarkRead(r.Context(), pathID(r))
	if err != nil {
		writeRepoError(w, err, "Comment not found")
		return
	}
	writeJSON(w, http.StatusOK, comment)
}
