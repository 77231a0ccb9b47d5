package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage_WrapsAndClassifies(t *testing.T) {
	driverErr := errors.New("database is locked")
	err := Storage("put project", driverErr)

	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, driverErr)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Equal(t, "storage: put project: database is locked", err.Error())

	// Wrapping twice keeps the original operation
	again := Storage("outer", err)
	var se *StorageError
	require.ErrorAs(t, again, &se)
	require.Equal(t, "put project", se.Op)

	require.NoError(t, Storage("noop", nil))
}

func TestConsistencyError_Classifies(t *testing.T) {
	var err error = &ConsistencyError{Op: "delete project", Detail: "1 content rows still reference project 3"}
	require.ErrorIs(t, err, ErrConsistency)
	require.NotErrorIs(t, err, ErrStorage)
	require.Contains(t, err.Error(), "delete project")
}
