package sqlite

import (
	"context"
	"sort"
	"testing"

	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCounterRepository_NextIDSequence(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := repo.NextID(ctx, project.CounterName)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	next, err := repo.Peek(ctx, project.CounterName)
	require.NoError(t, err)
	require.Equal(t, int64(4), next)

	// Counters are independent per name
	got, err := repo.NextID(ctx, content.CounterName)
	require.NoError(t, err)
	require.Equal(t, int64(1), got)
}

func TestCounterRepository_MissingRowStartsAtOne(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `DELETE FROM counters WHERE name = ?`, content.CounterName)
	require.NoError(t, err)

	peek, err := repo.Peek(ctx, content.CounterName)
	require.NoError(t, err)
	require.Equal(t, int64(1), peek)

	got, err := repo.NextID(ctx, content.CounterName)
	require.NoError(t, err)
	require.Equal(t, int64(1), got)

	got, err = repo.NextID(ctx, content.CounterName)
	require.NoError(t, err)
	require.Equal(t, int64(2), got)
}

func TestCounterRepository_UnknownName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)

	_, err := repo.NextID(context.Background(), "tagId")
	require.ErrorIs(t, err, repository.ErrValidation)
}

func TestCounterRepository_ConcurrentCallsAreContiguous(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	start, err := repo.Peek(ctx, content.CounterName)
	require.NoError(t, err)

	const n = 64
	ids := make([]int64, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			id, err := repo.NextID(ctx, content.CounterName)
			ids[i] = id
			return err
		})
	}
	require.NoError(t, g.Wait())

	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	for i, id := range ids {
		require.Equal(t, start+int64(i), id)
	}
}

func TestCounterRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/counters.db"

	db, err := Open(ctx, path, nil)
	require.NoError(t, err)
	repo := NewCounterRepository(db)
	for i := 0; i < 3; i++ {
		_, err := repo.NextID(ctx, project.CounterName)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	db, err = Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	got, err := NewCounterRepository(db).NextID(ctx, project.CounterName)
	require.NoError(t, err)
	require.Equal(t, int64(4), got)
}

func TestCounterRepository_ClosedStoreIsStorageError(t *testing.T) {
	db, err := New(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(context.Background()))
	require.NoError(t, db.Close())

	_, err = NewCounterRepository(db).NextID(context.Background(), project.CounterName)
	require.ErrorIs(t, err, repository.ErrStorage)
}
