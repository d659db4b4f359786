package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type SubtaskRepo struct {
	db *sql.DB
}

func NewSubtaskRepo(db *sql.DB) *SubtaskRepo {
	return &SubtaskRepo{db: db}
}

const subtaskColumns = `id, task_id, title, completed, sort_order, created_at`

func scanSubtask(row interface{ Scan(...any) error }) (*models.Subtask, error) {
	var s models.Subtask
	err := row.Scan(&s.ID, &s.TaskID, &s.Title, &s.Completed, &s.SortOrder, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubtaskRepo) ListByTask(ctx context.Context, taskID int64) ([]*models.Subtask, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+subtaskColumns+" FROM subtasks WHERE task_id = ? ORDER BY sort_order ASC, id ASC", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []*models.Subtask{}
	for rows.Next() {
		s, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Create appends a subtask at the end of the task's checklist
// (max(sort_order)+1). The parent task must exist.
func (r *SubtaskRepo) Create(ctx context.Context, taskID int64, title string) (*models.Subtask, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, taskID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var maxOrder int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), -1) FROM subtasks WHERE task_id = ?`, taskID).Scan(&maxOrder); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO subtasks (task_id, title, sort_order) VALUES (?, ?, ?)`, taskID, title, maxOrder+1)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SubtaskRepo) GetByID(ctx context.Context, id int64) (*models.Subtask, error) {
	return scanSubtask(r.db.QueryRowContext(ctx, "SELECT "+subtaskColumns+" FROM subtasks WHERE id = ?", id))
}

func (r *SubtaskRepo) Update(ctx context.Context, id int64, p models.SubtaskPatch) (*models.Subtask, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := p.Title.ValueOr(existing.Title)
	sortOrder := p.SortOrder.ValueOr(existing.SortOrder)
	completed := existing.Completed
	if p.Completed.Set && !p.Completed.Null {
		completed = 0
		if p.Completed.Value {
			completed = 1
		}
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE subtasks SET title = ?, completed = ?, sort_order = ? WHERE id = ?`, title, completed, sortOrder, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SubtaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
