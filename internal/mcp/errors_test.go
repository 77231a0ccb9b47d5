package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/ideabox/internal/domain/content"
	"github.com/rpggio/ideabox/internal/domain/project"
	"github.com/rpggio/ideabox/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))

	cases := map[string]error{
		"VALIDATION_ERROR":  content.ErrEmptyContent,
		"NOT_FOUND":         fmt.Errorf("renaming: %w", project.ErrProjectNotFound),
		"STORAGE_ERROR":     repository.Storage("read counter", errors.New("disk I/O error")),
		"CONSISTENCY_ERROR": &repository.ConsistencyError{Op: "delete project", Detail: "1 content rows remain"},
		"INTERNAL_ERROR":    errors.New("boom"),
	}
	for code, err := range cases {
		apiErr := MapError(err)
		require.Equal(t, code, apiErr.Code, err.Error())
		require.Equal(t, err.Error(), apiErr.Message)
	}
}

func TestFormatPayloadTruncates(t *testing.T) {
	big := make([]byte, maxLoggedPayload*2)
	for i := range big {
		big[i] = 'a'
	}
	out := formatPayload(string(big))
	require.Less(t, len(out), len(big))
	require.Contains(t, out, "bytes)")
	require.Equal(t, "<nil>", formatPayload(nil))
}
