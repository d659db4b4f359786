// Package cronjobs exposes a read-only view over the external scheduler's
// jobs.json. The file is owned by another tool; this package only parses it.
package cronjobs

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type jobsFile struct {
	Jobs []*models.CronJob `json:"jobs"`
}

// Source reads cron job descriptors from a jobs.json path. A Source created
// with Watch keeps a parsed copy refreshed on file change; otherwise every
// Enabled call re-reads the file.
type Source struct {
	path string
	log  *slog.Logger

	mu      sync.Mutex
	cached  []*models.CronJob
	watched bool
}

func NewSource(path string, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{path: path, log: log}
}

// Enabled returns the enabled jobs, or an empty slice when the file is
// missing. A parse failure of a present file is surfaced to the caller.
func (s *Source) Enabled() ([]*models.CronJob, error) {
	s.mu.Lock()
	if s.watched && s.cached != nil {
		jobs := s.cached
		s.mu.Unlock()
		return filterEnabled(jobs), nil
	}
	s.mu.Unlock()

	jobs, err := s.load()
	if err != nil {
		return nil, err
	}
	return filterEnabled(jobs), nil
}

func (s *Source) load() ([]*models.CronJob, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*models.CronJob{}, nil
	}
	if err != nil {
		return nil, err
	}
	var f jobsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Jobs == nil {
		f.Jobs = []*models.CronJob{}
	}
	return f.Jobs, nil
}

func filterEnabled(jobs []*models.CronJob) []*models.CronJob {
	out := []*models.CronJob{}
	for _, j := range jobs {
		if j.Enabled {
			out = append(out, j)
		}
	}
	return out
}

// Watch starts an fsnotify watcher on the jobs file's directory and keeps the
// parsed copy fresh. Returns a stop function. When the watcher cannot be
// created the Source silently falls back to per-call reads.
func (s *Source) Watch() func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Warn("cron jobs watcher unavailable, reading per request", "error", err)
		return func() {}
	}

	// Watch the directory: editors and the owning tool replace the file
	// rather than writing in place.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		s.log.Warn("cron jobs watcher unavailable, reading per request", "path", dir, "error", err)
		watcher.Close()
		return func() {}
	}

	s.refresh()
	s.mu.Lock()
	s.watched = true
	s.mu.Unlock()

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name == s.path {
					s.refresh()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("cron jobs watcher error", "error", err)
			}
		}
	}()
	return func() { watcher.Close() }
}

func (s *Source) refresh() {
	jobs, err := s.load()
	if err != nil {
		s.log.Warn("cron jobs reload failed, keeping previous copy", "error", err)
		return
	}
	s.mu.Lock()
	s.cached = jobs
	s.mu.Unlock()
}
