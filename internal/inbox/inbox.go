// Package inbox maintains the agent's denormalized task snapshot. The file is
// a convenience cache for external consumption; the database stays the source
// of truth, so a stale snapshot is tolerated and every write is a full
// overwrite.
package inbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

// TaskSource yields the agent's open (non-done) tasks, due date ascending.
type TaskSource interface {
	ListAgentOpen(ctx context.Context) ([]*models.Task, error)
}

type inboxTask struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AssignedTo  string  `json:"assignedTo"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

type snapshot struct {
	UpdatedAt string      `json:"updatedAt"`
	Tasks     []inboxTask `json:"tasks"`
}

// Syncer rewrites the snapshot file on every task mutation.
type Syncer struct {
	path  string
	tasks TaskSource
	log   *slog.Logger
}

func NewSyncer(dataDir string, tasks TaskSource, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{path: filepath.Join(dataDir, "friday-inbox.json"), tasks: tasks, log: log}
}

// Sync recomputes and overwrites the snapshot. Idempotent; safe to call on
// every mutation. The write goes through a temp file and rename so readers
// never observe a partial snapshot.
func (s *Syncer) Sync(ctx context.Context) error {
	tasks, err := s.tasks.ListAgentOpen(ctx)
	if err != nil {
		return err
	}

	snap := snapshot{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Tasks:     make([]inboxTask, 0, len(tasks)),
	}
	for _, t := range tasks {
		snap.Tasks = append(snap.Tasks, inboxTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			AssignedTo:  models.AssigneeAgent,
			DueDate:     t.DueDate,
			Priority:    t.Priority,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
		})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// SyncLogged runs Sync and logs failures instead of returning them: a broken
// snapshot write never fails the surrounding request.
func (s *Syncer) SyncLogged(ctx context.Context) {
	if err := s.Sync(ctx); err != nil {
		s.log.Error("friday inbox sync failed", "error", err)
	}
}

// Path returns the snapshot file location.
func (s *Syncer) Path() string {
	return s.path
}
