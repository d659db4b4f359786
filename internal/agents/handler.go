package agents

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zhilongzheng/friday-tasks/internal/cron"
	"github.com/zhilongzheng/friday-tasks/internal/models"
)

// TaskLister is the slice of the task repository the agent views need.
type TaskLister interface {
	List(ctx context.Context, f models.TaskFilter) ([]*models.TaskWithDetail, error)
}

// JobSource yields the enabled external cron jobs.
type JobSource interface {
	Enabled() ([]*models.CronJob, error)
}

// AgentStatus is one row of GET /api/agents/status.
type AgentStatus struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Working   int    `json:"working"`
	Pending   int    `json:"pending"`
	Completed int    `json:"completed"`
	CronJobs  int    `json:"cron_jobs"`
}

// AgentCron is one row of GET /api/agents/{id}/crons. NextDates carries the
// day-level calendar expansion for kind=cron schedules.
type AgentCron struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Enabled   bool                `json:"enabled"`
	Schedule  models.CronSchedule `json:"schedule"`
	LastRun   *string             `json:"lastRun,omitempty"`
	NextRun   *string             `json:"nextRun,omitempty"`
	NextDates []string            `json:"nextDates,omitempty"`
}

// Calendar expansion window for cron markers.
const (
	occurrenceHorizonDays = 90
	occurrenceMaxCount    = 60
)

type Handler struct {
	table []*Agent
	tasks TaskLister
	jobs  JobSource
	log   *slog.Logger

	now func() time.Time // test hook
}

func NewHandler(table []*Agent, tasks TaskLister, jobs JobSource, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{table: table, tasks: tasks, jobs: jobs, log: log, now: time.Now}
}

// Status handles GET /api/agents/status: per-agent task counts (agent-assigned
// tasks matched by project) and owned cron job counts (matched by job name).
// Approved and pending tasks both land in the pending bucket.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context(), models.TaskFilter{})
	if err != nil {
		h.log.Error("list tasks for agent status", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jobs, err := h.jobs.Enabled()
	if err != nil {
		h.log.Error("read cron jobs for agent status", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	statuses := make([]*AgentStatus, 0, len(h.table))
	for _, ag := range h.table {
		st := &AgentStatus{ID: ag.ID, Label: ag.Label}
		for _, j := range jobs {
			if ag.MatchesName(j.Name) {
				st.CronJobs++
			}
		}
		for _, t := range tasks {
			if !ag.MatchesTask(t.Assignee, t.Project) {
				continue
			}
			switch t.Status {
			case models.TaskStatusInProgress:
				st.Working++
			case models.TaskStatusApproved, models.TaskStatusPending:
				st.Pending++
			case models.TaskStatusDone:
				st.Completed++
			}
		}
		statuses = append(statuses, st)
	}

	writeJSON(w, http.StatusOK, statuses)
}

// Crons handles GET /api/agents/{id}/crons: the enabled jobs whose names
// match the agent's patterns, with calendar occurrence dates attached.
func (h *Handler) Crons(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var agent *Agent
	for _, ag := range h.table {
		if ag.ID == id {
			agent = ag
			break
		}
	}
	if agent == nil {
		writeError(w, http.StatusNotFound, "Agent not found")
		return
	}

	jobs, err := h.jobs.Enabled()
	if err != nil {
		h.log.Error("read cron jobs", "agent", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := []*AgentCron{}
	for _, j := range jobs {
		if !agent.MatchesName(j.Name) {
			continue
		}
		ac := &AgentCron{
			ID:       j.ID,
			Name:     j.Name,
			Enabled:  j.Enabled,
			Schedule: j.Schedule,
			LastRun:  j.LastRun,
			NextRun:  j.NextRun,
		}
		if j.Schedule.Kind == models.ScheduleKindCron {
			ac.NextDates = cron.NextOccurrences(j.Schedule.Expr, occurrenceHorizonDays, occurrenceMaxCount, h.now())
		}
		out = append(out, ac)
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
