package stats

import (
	"context"

	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
)

// ProjectRepository lists and counts projects.
type ProjectRepository interface {
	List(ctx context.Context) ([]project.Project, error)
	Count(ctx context.Context) (int, error)
}

// ContentRepository lists content stamps and counts content.
type ContentRepository interface {
	ListStamps(ctx context.Context) ([]content.Stamp, error)
	Count(ctx context.Context) (int, error)
}
