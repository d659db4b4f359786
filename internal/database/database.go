package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open creates (if needed) and opens the task database at <dataDir>/tasks.db,
// applies the schema and pending column migrations, and returns the handle.
func Open(dataDir string) (*sql.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "tasks.db"))
	if err != nil {
		return nil, err
	}

	// WAL for concurrent readers; sqlite has foreign keys off by default.
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
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

CREATE TABLE IF NOT EXISTS subtasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	completed INTEGER DEFAULT 0,
	sort_order INTEGER DEFAULT 0,
	created_at TEXT DEFAULT (datetime('now')),
	FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id INTEGER NOT NULL,
	author TEXT NOT NULL,
	content TEXT NOT NULL,
	notified INTEGER DEFAULT 0,
	created_at TEXT DEFAULT (datetime('now')),
	FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS artifacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	type TEXT NOT NULL,
	created_at TEXT DEFAULT (datetime('now')),
	FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
);
`

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	// Graceful migration for databases created before the calendar columns
	// existed: add-column-if-missing, checked at every startup.
	addColumns := []struct {
		column, ddl string
	}{
		{"start_time", `ALTER TABLE tasks ADD COLUMN start_time TEXT`},
		{"end_time", `ALTER TABLE tasks ADD COLUMN end_time TEXT`},
		{"all_day", `ALTER TABLE tasks ADD COLUMN all_day INTEGER DEFAULT 1`},
		{"project", `ALTER TABLE tasks ADD COLUMN project TEXT DEFAULT ''`},
	}
	for _, m := range addColumns {
		exists, err := columnExists(db, "tasks", m.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := db.Exec(m.ddl); err != nil {
			return fmt.Errorf("add column %s: %w", m.column, err)
		}
	}

	// Legacy status backfill: 'todo' predates the approval flow.
	res, err := db.Exec(`UPDATE tasks SET status = 'approved' WHERE status = 'todo'`)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("migrated legacy task statuses", "count", n, "from", "todo", "to", "approved")
	}
	return nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
