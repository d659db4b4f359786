package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestOpenCreatesSchema(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"tasks", "subtasks", "comments", "artifacts"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if fk != 1 {
		t.Error("foreign_keys pragma not enabled")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO tasks (title) VALUES ('survivor')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()

	var title string
	if err := db.QueryRow(`SELECT title FROM tasks`).Scan(&title); err != nil {
		t.Fatalf("select: %v", err)
	}
	if title != "survivor" {
		t.Errorf("title = %q", title)
	}
}

// A database created before the calendar columns existed gains them on open,
// and legacy 'todo' statuses are rewritten to 'approved'.
func TestOpenMigratesLegacyDatabase(t *testing.T) {
	dir := t.TempDir()

	legacy, err := sql.Open("sqlite", filepath.Join(dir, "tasks.db"))
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	if _, err := legacy.Exec(`
		CREATE TABLE tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			assignee TEXT NOT NULL DEFAULT 'zhilong',
			due_date TEXT,
			priority TEXT DEFAULT 'medium',
			status TEXT DEFAULT 'approved',
			created_at TEXT DEFAULT (datetime('now')),
			updated_at TEXT DEFAULT (datetime('now'))
		);
		INSERT INTO tasks (title, status) VALUES ('old', 'todo');
	`); err != nil {
		t.Fatalf("seed legacy: %v", err)
	}
	legacy.Close()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var status string
	var allDay int
	var project string
	if err := db.QueryRow(`SELECT status, all_day, project FROM tasks WHERE title = 'old'`).Scan(&status, &allDay, &project); err != nil {
		t.Fatalf("select migrated row: %v", err)
	}
	if status != "approved" {
		t.Errorf("status = %q, want approved", status)
	}
	if allDay != 1 {
		t.Errorf("all_day default = %d, want 1", allDay)
	}
	if project != "" {
		t.Errorf("project default = %q, want empty", project)
	}
}
