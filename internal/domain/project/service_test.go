package project_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/ideabox/internal/clock"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/repository"
	"github.com/rpggio/ideabox/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	ids := &mocks.IDGenerator{}
	ids.On("NextID", ctx, project.CounterName).Return(int64(3), nil)
	repo.On("Put", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.ID == 3 && p.Name == "Ideas" && p.CreatedAt.Equal(now)
	})).Return(nil)

	svc := project.NewService(repo, ids, clock.NewFake(now), nil)
	proj, err := svc.Create(ctx, "  Ideas  ")
	require.NoError(t, err)
	require.Equal(t, int64(3), proj.ID)
	require.Equal(t, "Ideas", proj.Name)
	repo.AssertExpectations(t)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	ids := &mocks.IDGenerator{}
	svc := project.NewService(repo, ids, nil, nil)

	_, err := svc.Create(ctx, "   ")
	require.ErrorIs(t, err, project.ErrInvalidName)
	require.ErrorIs(t, err, repository.ErrValidation)
	ids.AssertNotCalled(t, "NextID", mock.Anything, mock.Anything)
}

func TestProjectService_CreateStopsWhenCounterFails(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	ids := &mocks.IDGenerator{}
	ids.On("NextID", ctx, project.CounterName).Return(int64(0), repository.Storage("increment counter", errors.New("disk full")))

	svc := project.NewService(repo, ids, nil, nil)
	_, err := svc.Create(ctx, "Ideas")
	require.ErrorIs(t, err, repository.ErrStorage)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, int64(9)).Return((*project.Project)(nil), repository.ErrNotFound)

	svc := project.NewService(repo, &mocks.IDGenerator{}, nil, nil)
	_, err := svc.Get(ctx, 9)
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_Rename(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Rename", ctx, int64(1), "New Name").Return(nil)
	repo.On("Get", ctx, int64(1)).Return(&project.Project{ID: 1, Name: "New Name", CreatedAt: now}, nil)

	svc := project.NewService(repo, &mocks.IDGenerator{}, nil, nil)
	proj, err := svc.Rename(ctx, 1, "New Name")
	require.NoError(t, err)
	require.Equal(t, "New Name", proj.Name)
	require.True(t, proj.CreatedAt.Equal(now))
}

func TestProjectService_RenameErrors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Rename", ctx, int64(2), "Name").Return(repository.ErrNotFound)

	svc := project.NewService(repo, &mocks.IDGenerator{}, nil, nil)

	_, err := svc.Rename(ctx, 2, "Name")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Rename(ctx, 2, "")
	require.ErrorIs(t, err, project.ErrInvalidName)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("DeleteCascade", ctx, int64(4)).Return(2, nil).Once()
	repo.On("DeleteCascade", ctx, int64(5)).Return(0, &repository.ConsistencyError{Op: "delete project", Detail: "leftover"}).Once()

	svc := project.NewService(repo, &mocks.IDGenerator{}, nil, nil)
	require.NoError(t, svc.Delete(ctx, 4))
	require.ErrorIs(t, svc.Delete(ctx, 5), repository.ErrConsistency)
}
