package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Put(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	ListSummaries(ctx context.Context) ([]ProjectSummary, error)
	Rename(ctx context.Context, id int64, name string) error
	DeleteCascade(ctx context.Context, id int64) (int, error)
	Count(ctx context.Context) (int, error)
}

// IDGenerator issues durable, strictly increasing IDs per counter name.
type IDGenerator interface {
	NextID(ctx context.Context, name string) (int64, error)
}
