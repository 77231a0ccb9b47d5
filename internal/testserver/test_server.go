// Package testserver runs the ideabox MCP server against an in-memory store
// and connects a client to it, for tests that exercise the full tool surface.
package testserver

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ideabox/internal/clock"
	"github.com/rpggio/ideabox/internal/mcp"
	"github.com/rpggio/ideabox/internal/persistence"
	"github.com/rpggio/ideabox/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Store   *persistence.Facade
	Session *sdkmcp.ClientSession
}

// Options tweak the store behind the server.
type Options struct {
	Clock              clock.Clock
	MaxAttachmentBytes int64
}

func New(t *testing.T, opts Options) *TestServer {
	t.Helper()
	ctx := context.Background()

	store, err := persistence.Open(ctx, persistence.Options{
		Path:               sqlite.MemoryPath,
		Clock:              opts.Clock,
		MaxAttachmentBytes: opts.MaxAttachmentBytes,
	}, nil)
	require.NoError(t, err)

	server := mcp.NewServer(mcp.Config{Store: store})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
		_ = store.Close()
	})

	return &TestServer{Store: store, Session: session}
}

// Call invokes a tool and returns its text payload and whether it was a tool error.
func (ts *TestServer) Call(t *testing.T, tool string, args map[string]any) (string, bool) {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

// CallOK invokes a tool, requires success and decodes the JSON result into out.
func (ts *TestServer) CallOK(t *testing.T, tool string, args map[string]any, out any) {
	t.Helper()
	text, isError := ts.Call(t, tool, args)
	require.False(t, isError, "tool %s failed: %s", tool, text)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text), out))
	}
}

// CallErr invokes a tool, requires a tool error and returns its decoded body.
func (ts *TestServer) CallErr(t *testing.T, tool string, args map[string]any) mcp.APIError {
	t.Helper()
	text, isError := ts.Call(t, tool, args)
	require.True(t, isError, "tool %s unexpectedly succeeded: %s", tool, text)
	var apiErr mcp.APIError
	require.NoError(t, json.Unmarshal([]byte(text), &apiErr))
	return apiErr
}
