package mcp

import (
	charmlog "github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
)

// NewCodeAtlasMCPServer creates a new MCP server with all codeatlas tools and
// resources registered. The projectPath is the root directory of the project
// to analyze. Logs go to logger, never to stdout.
func NewCodeAtlasMCPServer(projectPath string, logger *charmlog.Logger) *server.MCPServer {
	if logger == nil {
		logger = charmlog.Default()
	}
	s := server.NewMCPServer(
		"codeatlas",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, logger)
	registerResources(s, projectPath, logger)

	return s
}
