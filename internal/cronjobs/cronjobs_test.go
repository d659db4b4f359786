package cronjobs

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

func writeJobs(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEnabledMissingFile(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "jobs.json"), nil)
	jobs, err := src.Enabled()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}

func TestEnabledFiltersDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	writeJobs(t, path, `{"jobs":[
		{"id":"a","name":"daily news","enabled":true,"schedule":{"kind":"cron","expr":"0 9 * * *"}},
		{"id":"b","name":"off","enabled":false,"schedule":{"kind":"every","expr":"1h"}}
	]}`)

	src := NewSource(path, nil)
	jobs, err := src.Enabled()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].ID != "a" {
		t.Fatalf("expected only job a, got %+v", jobs)
	}
	if jobs[0].Schedule.Kind != models.ScheduleKindCron {
		t.Errorf("schedule kind = %q", jobs[0].Schedule.Kind)
	}
}

func TestEnabledMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	writeJobs(t, path, `{not json`)

	src := NewSource(path, nil)
	if _, err := src.Enabled(); err == nil {
		t.Fatal("expected parse error for malformed file")
	}
}

func TestListHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	writeJobs(t, path, `{"jobs":[{"id":"a","name":"n","enabled":true,"schedule":{"kind":"cron","expr":"0 9 * * 1"}}]}`)

	h := NewHandler(NewSource(path, nil), nil)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/cron-jobs", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var jobs []*models.CronJob
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].Name != "n" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestListHandlerMissingFileReturnsEmptyArray(t *testing.T) {
	h := NewHandler(NewSource(filepath.Join(t.TempDir(), "jobs.json"), nil), nil)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/cron-jobs", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("body = %q, want []", got)
	}
}
