// Package usage derives token/cost records from per-agent session logs.
// Records are recomputed on demand from the JSONL files and cached
// process-wide; nothing here is persisted.
package usage

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

// Log lines longer than this are skipped rather than blocking the scan.
const maxLineBytes = 1 << 20

// logLine is the subset of a session log entry this package reads. A line
// qualifies as a usage record iff type=="assistant" and cost.total is a
// number; every other line, and every malformed line, is skipped silently.
type logLine struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model"`
	Provider  string `json:"provider"`
	Usage     struct {
		Input      int64 `json:"input"`
		Output     int64 `json:"output"`
		CacheRead  int64 `json:"cacheRead"`
		CacheWrite int64 `json:"cacheWrite"`
		Total      int64 `json:"total"`
	} `json:"usage"`
	Cost struct {
		Input      float64  `json:"input"`
		Output     float64  `json:"output"`
		CacheRead  float64  `json:"cacheRead"`
		CacheWrite float64  `json:"cacheWrite"`
		Total      *float64 `json:"total"`
	} `json:"cost"`
}

// Loader scans <root>/<agent>/**/*.jsonl session logs. Read errors are
// swallowed per file and per directory: a broken log never aborts the scan
// (partial results on error).
type Loader struct {
	root string
	log  *slog.Logger
}

func NewLoader(root string, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{root: root, log: log}
}

// Load reads every qualifying line of every log file under every agent
// directory. A missing root yields no records and no error.
func (l *Loader) Load() []*models.UsageRecord {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if !os.IsNotExist(err) {
			l.log.Warn("usage log root unreadable", "path", l.root, "error", err)
		}
		return nil
	}

	var records []*models.UsageRecord
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		agent := e.Name()
		agentDir := filepath.Join(l.root, agent)
		walkErr := filepath.WalkDir(agentDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable subtrees
			}
			if d.IsDir() || !strings.HasSuffix(path, ".jsonl") {
				return nil
			}
			records = append(records, l.scanFile(path, agent)...)
			return nil
		})
		if walkErr != nil {
			l.log.Warn("usage log walk failed", "agent", agent, "error", walkErr)
		}
	}
	return records
}

func (l *Loader) scanFile(path, agent string) []*models.UsageRecord {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var records []*models.UsageRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		var line logLine
		if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
			continue
		}
		if line.Type != "assistant" || line.Cost.Total == nil {
			continue
		}
		records = append(records, &models.UsageRecord{
			Timestamp: line.Timestamp,
			Agent:     agent,
			Model:     line.Model,
			Provider:  line.Provider,
			Tokens: models.TokenCounts{
				Input:      line.Usage.Input,
				Output:     line.Usage.Output,
				CacheRead:  line.Usage.CacheRead,
				CacheWrite: line.Usage.CacheWrite,
				Total:      line.Usage.Total,
			},
			Cost: models.CostBreakdown{
				Input:      line.Cost.Input,
				Output:     line.Cost.Output,
				CacheRead:  line.Cost.CacheRead,
				CacheWrite: line.Cost.CacheWrite,
				Total:      *line.Cost.Total,
			},
		})
	}
	// Scanner errors (oversized line, truncated file) end the scan for this
	// file; whatever parsed before that still counts.
	return records
}

// Cache is the process-wide record cache: one global key, fixed TTL.
// Concurrent refreshes are idempotent, so last writer wins.
type Cache struct {
	ttl  time.Duration
	load func() []*models.UsageRecord

	mu      sync.Mutex
	records []*models.UsageRecord
	fetched time.Time
}

func NewCache(ttl time.Duration, load func() []*models.UsageRecord) *Cache {
	return &Cache{ttl: ttl, load: load}
}

// Records returns the cached records, reloading when the TTL has lapsed.
func (c *Cache) Records() []*models.UsageRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.records == nil || time.Since(c.fetched) >= c.ttl {
		c.records = c.load()
		if c.records == nil {
			c.records = []*models.UsageRecord{}
		}
		c.fetched = time.Now()
	}
	return c.records
}
