package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/ideabox/internal/clock"
	"github.com/rpggio/ideabox/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	ids    IDGenerator
	clock  clock.Clock
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, ids IDGenerator, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, ids: ids, clock: clk, logger: logger}
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	id, err := s.ids.NextID(ctx, CounterName)
	if err != nil {
		return nil, fmt.Errorf("allocating project id: %w", err)
	}

	proj := &Project{
		ID:        id,
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Put(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Debug("project created", "project_id", proj.ID)
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Rename changes a project's name. CreatedAt is left untouched.
func (s *Service) Rename(ctx context.Context, id int64, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	if err := s.repo.Rename(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("renaming project: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes a project together with all of its content. Deleting a
// project that doesn't exist is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	s.logger.Debug("project deleted", "project_id", id, "content_removed", removed)
	return nil
}

// List returns project summaries, newest first.
func (s *Service) List(ctx context.Context) ([]ProjectSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return summaries, nil
}

// Count returns the number of stored projects.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}
