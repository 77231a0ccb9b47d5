package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestStdioProtocol drives the built binary over stdio with the SDK client.
func TestStdioProtocol(t *testing.T) {
	binaryPath := "./bin/ideabox"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/ideabox"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'go build -o bin/ideabox ./cmd/ideabox' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		"IDEABOX_DB_PATH="+filepath.Join(cmd.Dir, "ideabox.db"),
		"IDEABOX_LOG_LEVEL=error",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err)
	defer session.Close()

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.Equal(t, "ideabox", initResult.ServerInfo.Name)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "create_project",
		Arguments: map[string]any{"name": "From stdio"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	var created struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &created))
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "From stdio", created.Name)
}
