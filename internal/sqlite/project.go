package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Put inserts or replaces a project keyed by ID
func (r *ProjectRepository) Put(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			created_at = excluded.created_at
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		formatTime(proj.CreatedAt),
	)
	if err != nil {
		return writeError("put project", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	query := `
		SELECT id, name, created_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Name,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, repository.Storage("get project", err)
	}

	if proj.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, repository.Storage("get project", err)
	}

	return &proj, nil
}

// List returns every project, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `
		SELECT id, name, created_at
		FROM projects
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, repository.Storage("list projects", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		var proj project.Project
		var createdAt string
		if err := rows.Scan(&proj.ID, &proj.Name, &createdAt); err != nil {
			return nil, repository.Storage("scan project", err)
		}
		if proj.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, repository.Storage("scan project", err)
		}
		projects = append(projects, proj)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Storage("iterate project rows", err)
	}

	return projects, nil
}

// ListSummaries returns all projects with content counts and last activity, newest first
func (r *ProjectRepository) ListSummaries(ctx context.Context) ([]project.ProjectSummary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.created_at,
			COUNT(c.id) AS content_count,
			MAX(
				p.created_at,
				COALESCE(MAX(c.created_at), ''),
				COALESCE(MAX(c.updated_at), '')
			) AS last_activity_at
		FROM projects p
		LEFT JOIN content c ON c.project_id = p.id
		GROUP BY p.id, p.name, p.created_at
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, repository.Storage("list project summaries", err)
	}
	defer rows.Close()

	summaries := []project.ProjectSummary{}
	for rows.Next() {
		var summary project.ProjectSummary
		var createdAt, lastActivity string
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&createdAt,
			&summary.ContentCount,
			&lastActivity,
		); err != nil {
			return nil, repository.Storage("scan project summary", err)
		}
		if summary.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, repository.Storage("scan project summary", err)
		}
		if summary.LastActivityAt, err = parseTime(lastActivity); err != nil {
			return nil, repository.Storage("scan project summary", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Storage("iterate project summary rows", err)
	}

	return summaries, nil
}

// Rename updates a project's name in place
func (r *ProjectRepository) Rename(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE projects SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return writeError("rename project", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repository.Storage("rename project", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteCascade removes a project and all of its content in one transaction
// and returns how many content rows went with it. The transaction is rolled
// back if any content still references the project before commit.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id int64) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, repository.Storage("begin cascade delete", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM content WHERE project_id = ?`, id)
	if err != nil {
		return 0, repository.Storage("delete project content", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, repository.Storage("delete project content", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return 0, repository.Storage("delete project", err)
	}

	var leftover int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM content WHERE project_id = ?`, id).Scan(&leftover); err != nil {
		return 0, repository.Storage("verify cascade delete", err)
	}
	if leftover > 0 {
		return 0, &repository.ConsistencyError{
			Op:     "delete project",
			Detail: fmt.Sprintf("%d content rows still reference project %d", leftover, id),
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, repository.Storage("commit cascade delete", err)
	}

	return int(removed), nil
}

// Count returns the number of projects
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, repository.Storage("count projects", err)
	}
	return n, nil
}
