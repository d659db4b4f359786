package agents

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

func TestBuiltinMatching(t *testing.T) {
	table := Builtin()
	var alpha *Agent
	for _, a := range table {
		if a.ID == "alpha" {
			alpha = a
		}
	}
	if alpha == nil {
		t.Fatal("no alpha agent in builtin table")
	}
	if !alpha.MatchesName("Polymarket morning scan") {
		t.Error("alpha should match polymarket job")
	}
	if alpha.MatchesName("knowledge digest") {
		t.Error("alpha should not match knowledge job")
	}
	// Cron and project sets differ: market jobs belong to alpha, but
	// "market" alone is not one of its project patterns.
	if !alpha.MatchesName("stock market close") {
		t.Error("alpha should match market job")
	}
	if alpha.MatchesTask(models.AssigneeAgent, "market research") {
		t.Error("project set should not include the cron-only market pattern")
	}
}

func TestMatchesTask(t *testing.T) {
	table := Builtin()
	byID := map[string]*Agent{}
	for _, a := range table {
		byID[a.ID] = a
	}
	cases := []struct {
		agent, assignee, project string
		want                     bool
	}{
		{"alpha", "friday", "trading bots", true},
		{"alpha", "friday", "Polymarket", true}, // case-insensitive
		{"alpha", "zhilong", "trading bots", false},
		{"alpha", "friday", "", false},
		{"fridaytask", "friday", "task app", true},
		{"fridaytask", "friday", "multitasking", false}, // word boundary
		{"knowledge", "friday", "ai-push", true},
		{"hu", "friday", "hu", true},
		{"hu", "friday", "shuffle", false},
	}
	for _, c := range cases {
		if got := byID[c.agent].MatchesTask(c.assignee, c.project); got != c.want {
			t.Errorf("%s.MatchesTask(%q, %q) = %v, want %v", c.agent, c.assignee, c.project, got, c.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	content := `agents:
  - id: alpha
    label: Alpha
    projects: ["trading", "crypto"]
    crons: ["market"]
  - id: beta
    projects: ["beta"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 2 {
		t.Fatalf("got %d agents", len(table))
	}
	if table[1].Label != "beta" {
		t.Errorf("label should default to id, got %q", table[1].Label)
	}
	if !table[0].MatchesTask("friday", "Crypto desk") {
		t.Error("project patterns should be case-insensitive")
	}
	if !table[0].MatchesName("Market watch") || table[0].MatchesName("Crypto watch") {
		t.Error("crons list should replace project patterns for job names")
	}
	if !table[1].MatchesName("beta run") {
		t.Error("agents without crons should reuse project patterns for job names")
	}
}

func TestLoadFileBadPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	if err := os.WriteFile(path, []byte("agents:\n  - id: a\n    projects: [\"(\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

// --- handler mocks ---

type stubTasks struct {
	tasks []*models.TaskWithDetail
}

func (s *stubTasks) List(_ context.Context, _ models.TaskFilter) ([]*models.TaskWithDetail, error) {
	return s.tasks, nil
}

type stubJobs struct {
	jobs []*models.CronJob
}

func (s *stubJobs) Enabled() ([]*models.CronJob, error) { return s.jobs, nil }

func task(project, assignee, status string) *models.TaskWithDetail {
	return &models.TaskWithDetail{Task: models.Task{Project: project, Assignee: assignee, Status: status}}
}

func TestStatusHandler(t *testing.T) {
	tasks := &stubTasks{tasks: []*models.TaskWithDetail{
		task("trading bots", "friday", models.TaskStatusInProgress),
		task("polymarket", "friday", models.TaskStatusDone),
		task("task app", "friday", models.TaskStatusApproved),
		task("infra", "friday", models.TaskStatusPending),
		task("trading bots", "zhilong", models.TaskStatusInProgress),
		task("nowhere", "friday", models.TaskStatusPending),
	}}
	jobs := &stubJobs{jobs: []*models.CronJob{
		{ID: "1", Name: "polymarket scan", Enabled: true, Schedule: models.CronSchedule{Kind: "cron", Expr: "0 9 * * *"}},
		{ID: "2", Name: "friday task sweep", Enabled: true, Schedule: models.CronSchedule{Kind: "every", Expr: "1h"}},
	}}

	h := NewHandler(Builtin(), tasks, jobs, nil)
	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest("GET", "/api/agents/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []*AgentStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	byID := map[string]*AgentStatus{}
	for _, st := range got {
		byID[st.ID] = st
	}
	// The zhilong-assigned trading task must not count for alpha.
	if st := byID["alpha"]; st.Working != 1 || st.Completed != 1 || st.Pending != 0 || st.CronJobs != 1 {
		t.Errorf("alpha status = %+v", st)
	}
	// Approved folds into the pending bucket alongside pending.
	if st := byID["fridaytask"]; st.Pending != 2 || st.Working != 0 || st.CronJobs != 1 {
		t.Errorf("fridaytask status = %+v", st)
	}
}

func TestCronsHandler(t *testing.T) {
	jobs := &stubJobs{jobs: []*models.CronJob{
		{ID: "1", Name: "polymarket scan", Enabled: true, Schedule: models.CronSchedule{Kind: "cron", Expr: "0 9 * * 1"}},
		{ID: "2", Name: "unrelated", Enabled: true, Schedule: models.CronSchedule{Kind: "cron", Expr: "0 9 * * *"}},
	}}
	h := NewHandler(Builtin(), &stubTasks{}, jobs, nil)
	h.now = func() time.Time { return time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC) } // a Monday

	req := httptest.NewRequest("GET", "/api/agents/alpha/crons", nil)
	req.SetPathValue("id", "alpha")
	rec := httptest.NewRecorder()
	h.Crons(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []*AgentCron
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only the polymarket job, got %+v", got)
	}
	if len(got[0].NextDates) == 0 || got[0].NextDates[0] != "2026-08-03" {
		t.Errorf("NextDates = %v", got[0].NextDates)
	}
}

func TestCronsHandlerUnknownAgent(t *testing.T) {
	h := NewHandler(Builtin(), &stubTasks{}, &stubJobs{}, nil)
	req := httptest.NewRequest("GET", "/api/agents/ghost/crons", nil)
	req.SetPathValue("id", "ghost")
	rec := httptest.NewRecorder()
	h.Crons(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
