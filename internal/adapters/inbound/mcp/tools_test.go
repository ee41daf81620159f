package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/domain"
)

const fixtureDir = "../../../../testdata/sample"

var quiet = charmlog.New(io.Discard)

func callTool(t *testing.T, handler func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error), args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandleAnalyze(t *testing.T) {
	res := callTool(t, handleAnalyze(fixtureDir, quiet), nil)
	require.False(t, res.IsError, text(t, res))

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &result))
	assert.Equal(t, 4, result.TotalFiles)
	assert.Equal(t, "sample", result.ProjectName)
}

func TestHandleAnalyze_MissingProject(t *testing.T) {
	res := callTool(t, handleAnalyze("../../../../testdata/nope", quiet), nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "analysis failed")
}

func TestHandleHotspots_Limit(t *testing.T) {
	res := callTool(t, handleHotspots(fixtureDir, quiet), map[string]any{"limit": 2})
	require.False(t, res.IsError, text(t, res))

	var hotspots []domain.Hotspot
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &hotspots))
	require.Len(t, hotspots, 2)
	assert.Equal(t, "web/util.js", hotspots[0].File)
}

func TestHandleHotspots_InvalidLimit(t *testing.T) {
	res := callTool(t, handleHotspots(fixtureDir, quiet), map[string]any{"limit": 0})
	assert.True(t, res.IsError)
}

func TestHandleRefactorPlan(t *testing.T) {
	res := callTool(t, handleRefactorPlan(fixtureDir, quiet), nil)
	require.False(t, res.IsError, text(t, res))

	var actions []domain.RefactorAction
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &actions))
	require.NotEmpty(t, actions)
	assert.Equal(t, "Flatten Nested Code", actions[0].Action)
}

func TestHandleAnalyzeSource(t *testing.T) {
	res := callTool(t, handleAnalyzeSource(quiet), map[string]any{
		"filename": "deep.js",
		"content":  "function f() { if (a) { if (b) { if (c) { if (d) { x(); } } } } }\n",
	})
	require.False(t, res.IsError, text(t, res))

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &result))
	assert.Equal(t, "deep.js", result.ProjectName)
	require.Len(t, result.Smells, 1)
	assert.Equal(t, domain.SmellDeepNesting, result.Smells[0].Type)
}

func TestHandleAnalyzeSource_MissingArgs(t *testing.T) {
	res := callTool(t, handleAnalyzeSource(quiet), map[string]any{"filename": "a.py"})
	assert.True(t, res.IsError)
}

func TestHandleAnalyzeSource_UnknownLanguage(t *testing.T) {
	res := callTool(t, handleAnalyzeSource(quiet), map[string]any{"filename": "notes.txt", "content": "hi"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), domain.ErrNoAnalyzableFiles.Error())
}

func TestHandleReportResource(t *testing.T) {
	contents, err := handleReportResource(fixtureDir, quiet)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	trc, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, reportURI, trc.URI)
	assert.Contains(t, trc.Text, `"health_index"`)
}
