package mocks

import (
	"context"

	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Put(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListSummaries(ctx context.Context) ([]project.ProjectSummary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Rename(ctx context.Context, id int64, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *ProjectRepository) DeleteCascade(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *ProjectRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ContentRepository is a mock for content.Repository.
type ContentRepository struct {
	mock.Mock
}

func (m *ContentRepository) Put(ctx context.Context, c *content.Content) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContentRepository) Get(ctx context.Context, id int64) (*content.Content, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*content.Content); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentRepository) ListByProject(ctx context.Context, projectID int64) ([]content.Content, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]content.Content); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentRepository) ListStamps(ctx context.Context) ([]content.Stamp, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]content.Stamp); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContentRepository) Update(ctx context.Context, c *content.Content) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ContentRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// IDGenerator is a mock for the counter store.
type IDGenerator struct {
	mock.Mock
}

func (m *IDGenerator) NextID(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
