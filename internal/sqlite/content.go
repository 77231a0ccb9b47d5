package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/repository"
)

// ContentRepository implements content.Repository for SQLite
type ContentRepository struct {
	db *DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `
	id, project_id, text,
	has_file, file_name, file_mime_type, file_size, file_data, file_extension, file_is_image,
	created_at, updated_at
`

// fileColumns flattens an optional attachment into column values.
type fileColumns struct {
	has       bool
	name      string
	mimeType  string
	size      int64
	data      []byte
	extension string
	isImage   bool
}

func toFileColumns(f *content.FilePayload) fileColumns {
	if f == nil {
		return fileColumns{}
	}
	return fileColumns{
		has:       true,
		name:      f.Name,
		mimeType:  f.MimeType,
		size:      f.SizeBytes,
		data:      f.Content,
		extension: f.Extension,
		isImage:   f.IsImage,
	}
}

func (fc fileColumns) payload() *content.FilePayload {
	if !fc.has {
		return nil
	}
	return &content.FilePayload{
		Name:      fc.name,
		MimeType:  fc.mimeType,
		SizeBytes: fc.size,
		Content:   fc.data,
		Extension: fc.extension,
		IsImage:   fc.isImage,
	}
}

// Put inserts or replaces a content item keyed by ID. The write only happens
// when the owning project exists, checked within the same statement;
// otherwise repository.ErrNotFound is returned.
func (r *ContentRepository) Put(ctx context.Context, c *content.Content) error {
	query := `
		INSERT INTO content (
			id, project_id, text,
			has_file, file_name, file_mime_type, file_size, file_data, file_extension, file_is_image,
			created_at, updated_at
		)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM projects WHERE id = ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			text = excluded.text,
			has_file = excluded.has_file,
			file_name = excluded.file_name,
			file_mime_type = excluded.file_mime_type,
			file_size = excluded.file_size,
			file_data = excluded.file_data,
			file_extension = excluded.file_extension,
			file_is_image = excluded.file_is_image,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`

	fc := toFileColumns(c.File)
	result, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		c.Text,
		fc.has,
		fc.name,
		fc.mimeType,
		fc.size,
		fc.data,
		fc.extension,
		fc.isImage,
		formatTime(c.CreatedAt),
		nullableTime(c),
		c.ProjectID,
	)
	if err != nil {
		return writeError("put content", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repository.Storage("put content", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Get retrieves a content item by ID
func (r *ContentRepository) Get(ctx context.Context, id int64) (*content.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = ?`

	c, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, repository.Storage("get content", err)
	}
	return c, nil
}

// ListByProject returns a project's content through the project_id index, newest first
func (r *ContentRepository) ListByProject(ctx context.Context, projectID int64) ([]content.Content, error) {
	query := `SELECT ` + contentColumns + `
		FROM content
		WHERE project_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, repository.Storage("list content", err)
	}
	defer rows.Close()

	items := []content.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, repository.Storage("scan content", err)
		}
		items = append(items, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Storage("iterate content rows", err)
	}

	return items, nil
}

// ListStamps returns id, owner and creation time of every content item
// without reading attachment bytes
func (r *ContentRepository) ListStamps(ctx context.Context) ([]content.Stamp, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, project_id, created_at FROM content`)
	if err != nil {
		return nil, repository.Storage("list content stamps", err)
	}
	defer rows.Close()

	stamps := []content.Stamp{}
	for rows.Next() {
		var st content.Stamp
		var createdAt string
		if err := rows.Scan(&st.ID, &st.ProjectID, &createdAt); err != nil {
			return nil, repository.Storage("scan content stamp", err)
		}
		if st.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, repository.Storage("scan content stamp", err)
		}
		stamps = append(stamps, st)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.Storage("iterate content stamp rows", err)
	}

	return stamps, nil
}

// Update rewrites the mutable fields of an existing content item. The owning
// project and creation time are never changed.
func (r *ContentRepository) Update(ctx context.Context, c *content.Content) error {
	query := `
		UPDATE content
		SET text = ?,
		    has_file = ?, file_name = ?, file_mime_type = ?, file_size = ?,
		    file_data = ?, file_extension = ?, file_is_image = ?,
		    updated_at = ?
		WHERE id = ?
	`

	fc := toFileColumns(c.File)
	result, err := r.db.ExecContext(ctx, query,
		c.Text,
		fc.has,
		fc.name,
		fc.mimeType,
		fc.size,
		fc.data,
		fc.extension,
		fc.isImage,
		nullableTime(c),
		c.ID,
	)
	if err != nil {
		return writeError("update content", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repository.Storage("update content", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a content item. Removing a missing item is a no-op.
func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM content WHERE id = ?`, id); err != nil {
		return repository.Storage("delete content", err)
	}
	return nil
}

// Count returns the number of content items
func (r *ContentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content`).Scan(&n); err != nil {
		return 0, repository.Storage("count content", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*content.Content, error) {
	var c content.Content
	var fc fileColumns
	var createdAt string
	var updatedAt sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.ProjectID,
		&c.Text,
		&fc.has,
		&fc.name,
		&fc.mimeType,
		&fc.size,
		&fc.data,
		&fc.extension,
		&fc.isImage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t, err := parseTime(updatedAt.String)
		if err != nil {
			return nil, err
		}
		c.UpdatedAt = &t
	}
	c.File = fc.payload()
	return &c, nil
}

func nullableTime(c *content.Content) sql.NullString {
	if c.UpdatedAt == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*c.UpdatedAt), Valid: true}
}
