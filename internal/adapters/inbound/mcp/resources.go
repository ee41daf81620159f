package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const reportURI = "codeatlas://report"

// registerResources registers all codeatlas MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, logger *charmlog.Logger) {
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Analysis Report",
			mcplib.WithResourceDescription("Current health report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath, logger),
	)
}

func handleReportResource(projectPath string, logger *charmlog.Logger) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		result, err := newService(logger).AnalyzeProject(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("analysis failed: %w", err)
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      reportURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
