package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(MemoryPath)
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations(context.Background())
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"content",
		"counters",
		"meta",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	indexes := []string{
		"idx_projects_created_at",
		"idx_content_project_id",
		"idx_content_created_at",
	}
	for _, index := range indexes {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "index %s not found", index)
	}

	version, err := db.SchemaVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, version)
}

// TestMigrationsIdempotent verifies a second run is a no-op
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations(context.Background()))

	var seeded int
	err := db.QueryRow("SELECT COUNT(*) FROM counters").Scan(&seeded)
	require.NoError(t, err)
	require.Equal(t, 2, seeded)
}

// TestCountersSeeded verifies both counters start at 1
func TestCountersSeeded(t *testing.T) {
	db := NewTestDB(t)

	rows, err := db.Query("SELECT name, value FROM counters ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	got := map[string]int64{}
	for rows.Next() {
		var name string
		var value int64
		require.NoError(t, rows.Scan(&name, &value))
		got[name] = value
	}
	require.NoError(t, rows.Err())
	require.Equal(t, map[string]int64{"contentId": 1, "projectId": 1}, got)
}

// TestContentRequiresTextOrFile verifies the table-level body check
func TestContentRequiresTextOrFile(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO content (id, project_id, text, has_file, created_at) VALUES (?, ?, ?, ?, ?)`,
		1, 1, "", 0, "2026-01-01T00:00:00.000000000Z")
	require.Error(t, err, "should reject content with neither text nor file")
}

func TestOpen_FileStorePersistsStoreID(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "ideabox.db")

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)
	first, err := db.StoreID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
	require.NoError(t, db.Close())

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	second, err := reopened.StoreID(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, path, reopened.Path())
}

func TestTimeLayoutSortsChronologically(t *testing.T) {
	a, err := parseTime("2026-01-01T00:00:00.000000000Z")
	require.NoError(t, err)
	b := a.Add(500 * time.Millisecond)

	require.Less(t, formatTime(a), formatTime(b))
	roundTrip, err := parseTime(formatTime(b))
	require.NoError(t, err)
	require.True(t, roundTrip.Equal(b))
}

func TestStoreID_CachedAfterOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ideabox.db")

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	first, err := db.StoreID(ctx)
	require.NoError(t, err)

	// With the row gone, a query-backed lookup would mint a new id
	_, err = db.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, storeIDKey)
	require.NoError(t, err)

	second, err := db.StoreID(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meta`).Scan(&rows))
	require.Zero(t, rows)
}

func TestDataSourceName_EscapesPath(t *testing.T) {
	require.Equal(t, MemoryPath, dataSourceName(""))
	require.Equal(t,
		"file:/data/odd%3F%23%25%20dir/idea.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		dataSourceName("/data/odd?#% dir/idea.db"))
}

func TestOpen_PathWithURIReservedCharacters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "we?ird#dir", "idea%box.db")

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO projects (id, name, created_at) VALUES (1, 'x', ?)`, formatTime(time.Now()))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err, "database file should be created at the exact path")

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	var n int
	require.NoError(t, reopened.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n))
	require.Equal(t, 1, n)
}
