package content

import "context"

// Repository provides persistence for content items.
type Repository interface {
	Put(ctx context.Context, c *Content) error
	Get(ctx context.Context, id int64) (*Content, error)
	ListByProject(ctx context.Context, projectID int64) ([]Content, error)
	ListStamps(ctx context.Context) ([]Stamp, error)
	Update(ctx context.Context, c *Content) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// IDGenerator issues durable, strictly increasing IDs per counter name.
type IDGenerator interface {
	NextID(ctx context.Context, name string) (int64, error)
}
