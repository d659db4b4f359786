package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

// TaskRepoForHandler is the subset of the task repository the handler needs.
type TaskRepoForHandler interface {
	List(ctx context.Context, f models.TaskFilter) ([]*models.TaskWithDetail, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, f models.NewTaskFields) (*models.Task, error)
	Update(ctx context.Context, id int64, p models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status string) (*models.Task, error)
}

// InboxSyncer rewrites the agent inbox snapshot after task mutations.
type InboxSyncer interface {
	SyncLogged(ctx context.Context)
}

// TaskHandler serves the /api/tasks endpoints.
type TaskHandler struct {
	Repo   TaskRepoForHandler
	Inbox  InboxSyncer
	Logger *slog.Logger
}

// List handles GET /api/tasks?assignee=&status=&from=&to=.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tasks, err := h.Repo.List(r.Context(), models.TaskFilter{
		Assignee: q.Get("assignee"),
		Status:   q.Get("status"),
		DueFrom:  q.Get("from"),
		DueTo:    q.Get("to"),
	})
	if err != nil {
		h.Logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tasks == nil {
		tasks = []*models.TaskWithDetail{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.Repo.GetByID(r.Context(), pathID(r))
	if err != nil {
		writeRepoError(w, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Assignee    string  `json:"assignee"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	AllDay      *bool   `json:"all_day"`
	Project     string  `json:"project"`
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	assignee := req.Assignee
	if assignee == "" {
		assignee = models.AssigneeHuman
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	status := req.Status
	if status == "" {
		status = models.DefaultStatus(assignee)
	}
	allDay := 1
	if req.AllDay != nil && !*req.AllDay {
		allDay = 0
	}

	task, err := h.Repo.Create(r.Context(), models.NewTaskFields{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    assignee,
		DueDate:     req.DueDate,
		Priority:    priority,
		Status:      status,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      allDay,
		Project:     req.Project,
	})
	if err != nil {
		h.Logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if task.Assignee == models.AssigneeAgent {
		h.Inbox.SyncLogged(r.Context())
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}. The inbox syncs on every update, not
// only agent-assigned ones: a task may have just moved off the agent.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	task, err := h.Repo.Update(r.Context(), pathID(r), patch)
	if err != nil {
		writeRepoError(w, err, "Task not found")
		return
	}
	h.Inbox.SyncLogged(r.Context())
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}. Subtasks and comments cascade.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), pathID(r)); err != nil {
		writeRepoError(w, err, "Task not found")
		return
	}
	h.Inbox.SyncLogged(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Approve handles PUT /api/tasks/{id}/approve.
func (h *TaskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.TaskStatusApproved)
}

// Reject handles PUT /api/tasks/{id}/reject.
func (h *TaskHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.TaskStatusRejected)
}

func (h *TaskHandler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	task, err := h.Repo.SetStatus(r.Context(), pathID(r), status)
	if err != nil {
		writeRepoError(w, err, "Task not found")
		return
	}
	h.Inbox.SyncLogged(r.Context())
	writeJSON(w, http.StatusOK, task)
}
