package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

// ErrNotFound is returned when a row with the requested id does not exist.
var ErrNotFound = errors.New("not found")

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, title, description, assignee, due_date, priority, status, start_time, end_time, all_day, project, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Assignee, &t.DueDate, &t.Priority, &t.Status, &t.StartTime, &t.EndTime, &t.AllDay, &t.Project, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns tasks matching the filter, each with its subtasks and counts
// attached. Ordering is due_date ASC then priority DESC; priority is compared
// as raw text, which existing clients rely on, so it stays that way.
func (r *TaskRepo) List(ctx context.Context, f models.TaskFilter) ([]*models.TaskWithDetail, error) {
	var (
		conds []string
		args  []any
	)
	if f.Assignee != "" {
		conds = append(conds, "assignee = ?")
		args = append(args, f.Assignee)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.DueFrom != "" {
		conds = append(conds, "due_date >= ?")
		args = append(args, f.DueFrom)
	}
	if f.DueTo != "" {
		conds = append(conds, "due_date <= ?")
		args = append(args, f.DueTo)
	}
	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY due_date ASC, priority DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.TaskWithDetail
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, &models.TaskWithDetail{Task: *t})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range list {
		if err := r.attachDetail(ctx, t); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TaskRepo) attachDetail(ctx context.Context, t *models.TaskWithDetail) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, title, completed, sort_order, created_at
		FROM subtasks WHERE task_id = ? ORDER BY sort_order ASC, id ASC
	`, t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	t.Subtasks = []*models.Subtask{}
	for rows.Next() {
		var s models.Subtask
		if err := rows.Scan(&s.ID, &s.TaskID, &s.Title, &s.Completed, &s.SortOrder, &s.CreatedAt); err != nil {
			return err
		}
		t.Subtasks = append(t.Subtasks, &s)
		if s.Completed == 1 {
			t.SubtaskCompleted++
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	t.SubtaskCount = len(t.Subtasks)

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE task_id = ?`, t.ID).Scan(&t.CommentCount); err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artifacts WHERE task_id = ?`, t.ID).Scan(&t.ArtifactCount)
}

func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return scanTask(r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
}

// Create inserts a new task and returns the stored row. An all-day task never
// carries start/end times.
func (r *TaskRepo) Create(ctx context.Context, f models.NewTaskFields) (*models.Task, error) {
	if f.AllDay == 1 {
		f.StartTime, f.EndTime = nil, nil
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, description, assignee, due_date, priority, status, start_time, end_time, all_day, project)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.Title, f.Description, f.Assignee, f.DueDate, f.Priority, f.Status, f.StartTime, f.EndTime, f.AllDay, f.Project)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update applies a partial update and returns the stored row: absent fields
// keep their previous value, explicit null clears start_time/end_time/project,
// and updated_at is always re-stamped.
func (r *TaskRepo) Update(ctx context.Context, id int64, p models.TaskPatch) (*models.Task, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := p.Title.ValueOr(existing.Title)
	description := p.Description.ValueOr(existing.Description)
	assignee := p.Assignee.ValueOr(existing.Assignee)
	priority := p.Priority.ValueOr(existing.Priority)
	status := p.Status.ValueOr(existing.Status)

	dueDate := existing.DueDate
	if p.DueDate.Set && !p.DueDate.Null {
		dueDate = &p.DueDate.Value
	}

	startTime := clearable(p.StartTime, existing.StartTime)
	endTime := clearable(p.EndTime, existing.EndTime)

	project := existing.Project
	if p.Project.Set {
		if p.Project.Null {
			project = ""
		} else {
			project = p.Project.Value
		}
	}

	allDay := existing.AllDay
	if p.AllDay.Set && !p.AllDay.Null {
		allDay = 0
		if p.AllDay.Value {
			allDay = 1
		}
	}
	if allDay == 1 {
		startTime, endTime = nil, nil
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, assignee = ?, due_date = ?, priority = ?, status = ?,
			start_time = ?, end_time = ?, all_day = ?, project = ?, updated_at = datetime('now')
		WHERE id = ?
	`, title, description, assignee, dueDate, priority, status, startTime, endTime, allDay, project, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// clearable implements present-as-null ⇒ clear, absent ⇒ keep.
func clearable(o models.Opt[string], existing *string) *string {
	if !o.Set {
		return existing
	}
	if o.Null {
		return nil
	}
	return &o.Value
}

// Delete removes the task; subtasks, comments and artifacts go with it via
// the foreign-key cascade.
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
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

// SetStatus is the approve/reject transition: it sets status and re-stamps
// updated_at.
func (r *TaskRepo) SetStatus(ctx context.Context, id int64, status string) (*models.Task, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ?, updated_at = datetime('now') WHERE id = ?`, status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ListAgentOpen returns the agent's non-done tasks ordered by due date, the
// source rows for the inbox snapshot.
func (r *TaskRepo) ListAgentOpen(ctx context.Context) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE assignee = ? AND status != ? ORDER BY due_date ASC", models.AssigneeAgent, models.TaskStatusDone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
