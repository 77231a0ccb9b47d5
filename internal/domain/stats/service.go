package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/ideabox/internal/clock"
)

// Service computes derived statistics over projects and content.
type Service struct {
	projects ProjectRepository
	contents ContentRepository
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates a new stats service.
func NewService(projects ProjectRepository, contents ContentRepository, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{projects: projects, contents: contents, clock: clk, logger: logger}
}

// TotalContentCount returns the number of content items across all projects.
func (s *Service) TotalContentCount(ctx context.Context) (int, error) {
	n, err := s.contents.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting content: %w", err)
	}
	return n, nil
}

// RecentlyActiveProjectCount counts distinct projects that were created, or
// received content, within the trailing window. It scans every project and
// every content stamp on each call.
func (s *Service) RecentlyActiveProjectCount(ctx context.Context, windowDays int) (int, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	// Calendar arithmetic; a Duration overflows past ~292 years.
	cutoff := s.clock.Now().AddDate(0, 0, -windowDays)

	projects, err := s.projects.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing projects: %w", err)
	}
	stamps, err := s.contents.ListStamps(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing content stamps: %w", err)
	}

	known := make(map[int64]struct{}, len(projects))
	active := make(map[int64]struct{})
	for _, p := range projects {
		known[p.ID] = struct{}{}
		if !p.CreatedAt.Before(cutoff) {
			active[p.ID] = struct{}{}
		}
	}
	for _, st := range stamps {
		if _, ok := known[st.ProjectID]; !ok {
			continue
		}
		if !st.CreatedAt.Before(cutoff) {
			active[st.ProjectID] = struct{}{}
		}
	}

	s.logger.Debug("recent activity computed",
		"window_days", windowDays,
		"projects_scanned", len(projects),
		"stamps_scanned", len(stamps),
		"active", len(active),
	)
	return len(active), nil
}

// Summary gathers project, content and recent-activity counts.
func (s *Service) Summary(ctx context.Context, windowDays int) (Stats, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("counting projects: %w", err)
	}
	contents, err := s.TotalContentCount(ctx)
	if err != nil {
		return Stats{}, err
	}
	recent, err := s.RecentlyActiveProjectCount(ctx, windowDays)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Projects:       projects,
		Contents:       contents,
		RecentlyActive: recent,
		WindowDays:     windowDays,
	}, nil
}
