package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/repository"
)

var knownCounters = map[string]struct{}{
	project.CounterName: {},
	content.CounterName: {},
}

// CounterRepository issues durable monotonic IDs
type CounterRepository struct {
	db *DB
}

// NewCounterRepository creates a new CounterRepository
func NewCounterRepository(db *DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// NextID returns the counter's current value and stores value+1. The read and
// the increment are one upsert statement inside one transaction, so two
// callers can never observe the same value. A missing row starts at 1.
func (r *CounterRepository) NextID(ctx context.Context, name string) (int64, error) {
	if err := checkCounter(name); err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, repository.Storage("begin counter transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO counters (name, value) VALUES (?, 2)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
		RETURNING value - 1
	`

	var next int64
	if err := tx.QueryRowContext(ctx, query, name).Scan(&next); err != nil {
		return 0, repository.Storage("increment counter", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, repository.Storage("commit counter", err)
	}

	return next, nil
}

// Peek returns the value the next NextID call would hand out, without consuming it.
func (r *CounterRepository) Peek(ctx context.Context, name string) (int64, error) {
	if err := checkCounter(name); err != nil {
		return 0, err
	}

	var value int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, repository.Storage("read counter", err)
	}
	return value, nil
}

func checkCounter(name string) error {
	if _, ok := knownCounters[name]; !ok {
		return fmt.Errorf("%w: unknown counter %q", repository.ErrValidation, name)
	}
	return nil
}
