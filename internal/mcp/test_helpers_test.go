package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/core/config"
	"github.com/aki/mknote/internal/core/logger"
)

// setupTestServer creates a server over a fresh temp workspace
func setupTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	t.Setenv(config.EnvLocation, "")

	dir := t.TempDir()
	workspace := filepath.Join(dir, "notes")
	require.NoError(t, os.Mkdir(workspace, 0o755))

	c, err := app.NewContainer(app.Options{
		ConfigPath: filepath.Join(dir, "config.yaml"),
		Logger:     logger.Nop(),
	})
	require.NoError(t, err)
	require.NoError(t, c.ConfigManager.SetLocation(workspace))
	t.Cleanup(c.Close)

	s, err := NewServer(c, "test")
	require.NoError(t, err)
	return s, workspace
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func callTool(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

// decodeResult unmarshals the "result" field of an enhanced tool result
func decodeResult(t *testing.T, result *mcp.CallToolResult, target any) {
	t.Helper()
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Result, target))
}

func names(entries []entryInfo) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
