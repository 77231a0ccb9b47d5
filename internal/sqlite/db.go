package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/ideabox/internal/repository"
	"github.com/rpggio/ideabox/migrations"
	_ "modernc.org/sqlite"
)

const (
	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"

	storeIDKey = "store_id"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
	path string

	mu      sync.Mutex
	storeID string
}

// New creates a new SQLite database connection.
//
// The pool is limited to a single connection: SQLite serializes writers anyway,
// and a single connection keeps every transaction strictly ordered and lets an
// in-memory database live for as long as the DB does.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName(path))
	if err != nil {
		return nil, repository.Storage("open database", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, repository.Storage("open database", err)
	}

	return &DB{DB: db, path: path}, nil
}

// Open prepares the database file location, connects, and applies pending
// migrations. It is called once per process; the returned handle is shared.
func Open(ctx context.Context, path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := ensureDir(path); err != nil {
		return nil, repository.Storage("prepare database path", err)
	}

	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	storeID, err := db.ensureStoreID(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("store ready", "path", path, "store_id", storeID)
	return db, nil
}

// Path returns the location the database was opened from.
func (db *DB) Path() string { return db.path }

// RunMigrations applies every embedded migration newer than the recorded
// schema version, each in its own transaction.
func (db *DB) RunMigrations(ctx context.Context) error {
	names, err := migrationNames()
	if err != nil {
		return repository.Storage("read migrations", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return repository.Storage("read schema version", err)
	}

	for _, name := range names {
		version, err := migrationVersion(name)
		if err != nil {
			return repository.Storage("parse migration name", err)
		}
		if version <= current {
			continue
		}
		data, err := migrations.FS.ReadFile(name)
		if err != nil {
			return repository.Storage("read migration "+name, err)
		}
		if err := db.applyMigration(ctx, version, string(data)); err != nil {
			return repository.Storage("apply migration "+name, err)
		}
		current = version
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, version int, ddl string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion reports the applied migration version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, repository.Storage("read schema version", err)
	}
	return v, nil
}

// StoreID returns the identifier minted for this store the first time it was
// opened. It stays stable across restarts. After Open the value is cached and
// no query is issued.
func (db *DB) StoreID(ctx context.Context) (string, error) {
	db.mu.Lock()
	cached := db.storeID
	db.mu.Unlock()
	if cached != "" {
		return cached, nil
	}
	return db.ensureStoreID(ctx)
}

// ensureStoreID writes a fresh id unless one exists, then reads and caches it.
func (db *DB) ensureStoreID(ctx context.Context) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO meta (key, value) VALUES (?, ?)`,
		storeIDKey, uuid.NewString(),
	); err != nil {
		return "", repository.Storage("ensure store id", err)
	}

	var id string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, storeIDKey).Scan(&id); err != nil {
		return "", repository.Storage("read store id", err)
	}
	db.storeID = id
	return id, nil
}

func dataSourceName(path string) string {
	if path == "" || path == MemoryPath {
		return MemoryPath
	}
	// Each segment is escaped so '?', '#' and '%' in a file name stay part of the path.
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "file:" + strings.Join(segments, "/") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func ensureDir(path string) error {
	if path == "" || path == MemoryPath {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func migrationNames() ([]string, error) {
	entries, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return entries, nil
}

func migrationVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, errors.New("migration name must start with a number: " + name)
	}
	return strconv.Atoi(prefix)
}

// timeLayout is fixed width so stored values sort lexicographically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
