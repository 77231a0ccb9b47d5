// Package persistence is the single entry point the rest of the application
// uses for durable state. It owns the store handle and composes the project,
// content and stats services over it.
package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/ideabox/internal/clock"
	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/domain/stats"
	"github.com/rpggio/ideabox/internal/sqlite"
)

// Options configures Open.
type Options struct {
	// Path of the database file. sqlite.MemoryPath opens a throwaway store.
	Path string
	// MaxAttachmentBytes caps file payload size. Zero disables the cap.
	MaxAttachmentBytes int64
	// RecentWindowDays is used when callers pass a non-positive window.
	RecentWindowDays int
	Clock            clock.Clock
}

// Facade exposes every persistence operation the UI layer needs.
type Facade struct {
	db       *sqlite.DB
	counters *sqlite.CounterRepository
	projects *project.Service
	contents *content.Service
	stats    *stats.Service
	window   int
	logger   *slog.Logger
}

// Open opens the store at opts.Path, applies migrations and wires the services.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Facade, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	db, err := sqlite.Open(ctx, opts.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return New(db, opts, logger), nil
}

// New wires a Facade over an already migrated database.
func New(db *sqlite.DB, opts Options, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	window := opts.RecentWindowDays
	if window <= 0 {
		window = stats.DefaultWindowDays
	}

	counters := sqlite.NewCounterRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	contentRepo := sqlite.NewContentRepository(db)

	return &Facade{
		db:       db,
		counters: counters,
		projects: project.NewService(projectRepo, counters, clk, logger.With("component", "project")),
		contents: content.NewService(contentRepo, counters, clk, logger.With("component", "content"),
			content.WithMaxFileBytes(opts.MaxAttachmentBytes)),
		stats:  stats.NewService(projectRepo, contentRepo, clk, logger.With("component", "stats")),
		window: window,
		logger: logger,
	}
}

// Close releases the store handle.
func (f *Facade) Close() error {
	return f.db.Close()
}

// StoreID identifies this store instance. It is generated when the store is
// first created and never changes.
func (f *Facade) StoreID(ctx context.Context) (string, error) {
	return f.db.StoreID(ctx)
}

// CreateProject stores a new project named name, trimmed, with the next project id.
func (f *Facade) CreateProject(ctx context.Context, name string) (*project.Project, error) {
	return f.projects.Create(ctx, name)
}

// RenameProject changes a project's name and returns the updated project.
func (f *Facade) RenameProject(ctx context.Context, id int64, name string) (*project.Project, error) {
	return f.projects.Rename(ctx, id, name)
}

// DeleteProject removes the project and all of its content atomically.
func (f *Facade) DeleteProject(ctx context.Context, id int64) error {
	return f.projects.Delete(ctx, id)
}

// GetProject returns the project with the given id.
func (f *Facade) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	return f.projects.Get(ctx, id)
}

// ListProjects returns every project with its content count, newest first.
func (f *Facade) ListProjects(ctx context.Context) ([]project.ProjectSummary, error) {
	return f.projects.List(ctx)
}

// AddContent stores a new idea in an existing project. text or file must be set.
func (f *Facade) AddContent(ctx context.Context, projectID int64, text string, file *content.FilePayload) (*content.Content, error) {
	return f.contents.Add(ctx, projectID, text, file)
}

// UpdateContent applies a partial edit to an idea and stamps UpdatedAt.
func (f *Facade) UpdateContent(ctx context.Context, id int64, req content.UpdateRequest) (*content.Content, error) {
	return f.contents.Update(ctx, id, req)
}

// DeleteContent removes an idea. Deleting a missing idea is not an error.
func (f *Facade) DeleteContent(ctx context.Context, id int64) error {
	return f.contents.Delete(ctx, id)
}

// GetContent returns a single idea, attachment bytes included.
func (f *Facade) GetContent(ctx context.Context, id int64) (*content.Content, error) {
	return f.contents.Get(ctx, id)
}

// ListContentForProject returns the project's content, newest first. An
// unknown project yields an empty list.
func (f *Facade) ListContentForProject(ctx context.Context, projectID int64) ([]content.Content, error) {
	return f.contents.ListForProject(ctx, projectID)
}

// TotalContentCount returns the number of ideas across all projects.
func (f *Facade) TotalContentCount(ctx context.Context) (int, error) {
	return f.stats.TotalContentCount(ctx)
}

// RecentlyActiveProjectCount counts projects created or given content within
// the last windowDays days. A non-positive window uses the configured default.
func (f *Facade) RecentlyActiveProjectCount(ctx context.Context, windowDays int) (int, error) {
	if windowDays <= 0 {
		windowDays = f.window
	}
	return f.stats.RecentlyActiveProjectCount(ctx, windowDays)
}

// Stats summarises totals and recent activity. A non-positive window uses the
// configured default.
func (f *Facade) Stats(ctx context.Context, windowDays int) (stats.Stats, error) {
	if windowDays <= 0 {
		windowDays = f.window
	}
	return f.stats.Summary(ctx, windowDays)
}

// PeekID reports the next id a counter will hand out without consuming it.
func (f *Facade) PeekID(ctx context.Context, counter string) (int64, error) {
	return f.counters.Peek(ctx, counter)
}
