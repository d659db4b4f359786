package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type stubSource struct {
	tasks []*models.Task
	err   error
}

func (s *stubSource) ListAgentOpen(_ context.Context) ([]*models.Task, error) {
	return s.tasks, s.err
}

func strPtr(v string) *string { return &v }

func TestSyncWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	src := &stubSource{tasks: []*models.Task{
		{ID: 1, Title: "Ship release", Description: "d", Assignee: "friday", DueDate: strPtr("2026-08-10"), Priority: "high", Status: "pending", CreatedAt: "2026-08-01 09:00:00"},
		{ID: 2, Title: "Weekly digest", Assignee: "friday", Priority: "medium", Status: "approved", CreatedAt: "2026-08-02 09:00:00"},
	}}
	s := NewSyncer(dir, src, nil)

	if err := s.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var snap struct {
		UpdatedAt string `json:"updatedAt"`
		Tasks     []struct {
			ID         int64   `json:"id"`
			Title      string  `json:"title"`
			AssignedTo string  `json:"assignedTo"`
			DueDate    *string `json:"dueDate"`
			Status     string  `json:"status"`
			CreatedAt  string  `json:"createdAt"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.UpdatedAt == "" {
		t.Error("missing updatedAt")
	}
	if len(snap.Tasks) != 2 {
		t.Fatalf("tasks = %d", len(snap.Tasks))
	}
	if snap.Tasks[0].AssignedTo != "friday" || *snap.Tasks[0].DueDate != "2026-08-10" {
		t.Errorf("first task = %+v", snap.Tasks[0])
	}
	if snap.Tasks[1].DueDate != nil {
		t.Errorf("second task dueDate should be null")
	}
}

func TestSyncOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := &stubSource{tasks: []*models.Task{{ID: 1, Title: "a", Assignee: "friday"}}}
	s := NewSyncer(dir, src, nil)

	if err := s.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}
	src.tasks = nil
	if err := s.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(s.Path())
	var snap struct {
		Tasks []any `json:"tasks"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Tasks) != 0 {
		t.Fatalf("snapshot not fully overwritten: %d tasks", len(snap.Tasks))
	}
}

func TestSyncLoggedSwallowsErrors(t *testing.T) {
	s := NewSyncer(t.TempDir(), &stubSource{err: errors.New("db gone")}, nil)
	s.SyncLogged(context.Background()) // must not panic or write
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("snapshot should not exist after failed sync")
	}
}
