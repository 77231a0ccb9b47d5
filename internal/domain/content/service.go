package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/ideabox/internal/clock"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/repository"
)

// Service handles content business logic.
type Service struct {
	repo         Repository
	ids          IDGenerator
	clock        clock.Clock
	logger       *slog.Logger
	maxFileBytes int64
}

// Option configures a Service.
type Option func(*Service)

// WithMaxFileBytes caps attachment size. Zero disables the cap.
func WithMaxFileBytes(n int64) Option {
	return func(s *Service) { s.maxFileBytes = n }
}

// NewService creates a new content service.
func NewService(repo Repository, ids IDGenerator, clk clock.Clock, logger *slog.Logger, opts ...Option) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{repo: repo, ids: ids, clock: clk, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a content item in an existing project. Text is stored as given;
// whitespace only matters for the text-or-file check.
func (s *Service) Add(ctx context.Context, projectID int64, text string, file *FilePayload) (*Content, error) {
	file = NormalizeFile(file)
	if err := ValidateBody(text, file); err != nil {
		return nil, err
	}
	if err := ValidateFile(file, s.maxFileBytes); err != nil {
		s.logger.Warn("rejected attachment", "project_id", projectID, "error", err)
		return nil, err
	}
	if projectID <= 0 {
		return nil, project.ErrProjectNotFound
	}

	id, err := s.ids.NextID(ctx, CounterName)
	if err != nil {
		return nil, fmt.Errorf("allocating content id: %w", err)
	}

	c := &Content{
		ID:        id,
		ProjectID: projectID,
		Text:      text,
		File:      file,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating content: %w", err)
	}

	s.logger.Debug("content added", "content_id", c.ID, "project_id", projectID, "has_file", file != nil)
	return c, nil
}

// Get fetches a content item by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Content, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("getting content: %w", err)
	}
	return c, nil
}

// Update applies a partial edit. The text-or-file rule is checked against the
// merged result, and UpdatedAt is stamped whenever something changes.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Content, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.empty() {
		return current, nil
	}
	if req.ClearFile && req.File != nil {
		return nil, fmt.Errorf("%w: clear_file and file are mutually exclusive", ErrInvalidFile)
	}

	updated := *current
	if req.Text != nil {
		updated.Text = *req.Text
	}
	if req.ClearFile {
		updated.File = nil
	}
	if req.File != nil {
		updated.File = NormalizeFile(req.File)
		if err := ValidateFile(updated.File, s.maxFileBytes); err != nil {
			s.logger.Warn("rejected attachment", "content_id", id, "error", err)
			return nil, err
		}
	}
	if err := ValidateBody(updated.Text, updated.File); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	updated.UpdatedAt = &now

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("updating content: %w", err)
	}

	s.logger.Debug("content updated", "content_id", id)
	return &updated, nil
}

// Delete removes a content item. Deleting a missing item is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting content: %w", err)
	}
	return nil
}

// ListForProject returns a project's content, newest first.
func (s *Service) ListForProject(ctx context.Context, projectID int64) ([]Content, error) {
	items, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	return items, nil
}

// Count returns the total number of content items.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting content: %w", err)
	}
	return n, nil
}
