package mcp_test

import (
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/codeatlas/codeatlas/internal/adapters/inbound/mcp"
)

func TestNewCodeAtlasMCPServer(t *testing.T) {
	s := mcpadapter.NewCodeAtlasMCPServer(".", nil)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewCodeAtlasMCPServer(".", charmlog.New(io.Discard))
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"codeatlas_analyze",
		"codeatlas_hotspots",
		"codeatlas_refactor_plan",
		"codeatlas_analyze_source",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
