package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

const commentColumns = `id, task_id, author, content, notified, created_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.TaskID, &c.Author, &c.Content, &c.Notified, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) ListByTask(ctx context.Context, taskID int64) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE task_id = ? ORDER BY created_at ASC", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []*models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Create stores a comment on an existing task. Agent-authored comments start
// already notified; human-authored ones start unread so the agent's heartbeat
// picks them up.
func (r *CommentRepo) Create(ctx context.Context, taskID int64, author, content string) (*models.Comment, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, taskID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	notified := 0
	if author == models.AssigneeAgent {
		notified = 1
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO comments (task_id, author, content, notified) VALUES (?, ?, ?, ?)`, taskID, author, content, notified)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	return scanComment(r.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ?", id))
}

// ListUnread returns human-authored comments the agent has not consumed yet,
// oldest first, joined with the task title.
func (r *CommentRepo) ListUnread(ctx context.Context) ([]*models.UnreadComment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.task_id, c.author, c.content, c.notified, c.created_at, t.title
		FROM comments c
		JOIN tasks t ON c.task_id = t.id
		WHERE c.author = ? AND c.notified = 0
		ORDER BY c.created_at ASC
	`, models.AssigneeHuman)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []*models.UnreadComment{}
	for rows.Next() {
		var c models.UnreadComment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Author, &c.Content, &c.Notified, &c.CreatedAt, &c.TaskTitle); err != nil {
			return nil, err
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// MarkRead flips the comment's notified bit to 1. Idempotent.
func (r *CommentRepo) MarkRead(ctx context.Context, id int64) (*models.Comment, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE comments SET notified = 1 WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
