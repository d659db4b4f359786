package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

type ArtifactRepo struct {
	db *sql.DB
}

func NewArtifactRepo(db *sql.DB) *ArtifactRepo {
	return &ArtifactRepo{db: db}
}

const artifactColumns = `id, task_id, name, url, type, created_at`

func scanArtifact(row interface{ Scan(...any) error }) (*models.Artifact, error) {
	var a models.Artifact
	err := row.Scan(&a.ID, &a.TaskID, &a.Name, &a.URL, &a.Type, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtifactRepo) ListByTask(ctx context.Context, taskID int64) ([]*models.Artifact, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+artifactColumns+" FROM artifacts WHERE task_id = ? ORDER BY created_at DESC", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []*models.Artifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListAll returns every artifact joined with its task's title and project,
// newest first, for cross-task browsing.
func (r *ArtifactRepo) ListAll(ctx context.Context) ([]*models.ArtifactWithTask, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.task_id, a.name, a.url, a.type, a.created_at, t.title, t.project
		FROM artifacts a
		JOIN tasks t ON a.task_id = t.id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []*models.ArtifactWithTask{}
	for rows.Next() {
		var a models.ArtifactWithTask
		if err := rows.Scan(&a.ID, &a.TaskID, &a.Name, &a.URL, &a.Type, &a.CreatedAt, &a.TaskTitle, &a.Project); err != nil {
			return nil, err
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *ArtifactRepo) Create(ctx context.Context, taskID int64, name, url, typ string) (*models.Artifact, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, taskID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO artifacts (task_id, name, url, type) VALUES (?, ?, ?, ?)`, taskID, name, url, typ)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ArtifactRepo) GetByID(ctx context.Context, id int64) (*models.Artifact, error) {
	return scanArtifact(r.db.QueryRowContext(ctx, "SELECT "+artifactColumns+" FROM artifacts WHERE id = ?", id))
}

func (r *ArtifactRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id)
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
