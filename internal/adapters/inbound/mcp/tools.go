package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codeatlas/codeatlas/internal/adapters/outbound/config"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/detector"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/gitinfo"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/parser"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/scanner"
	"github.com/codeatlas/codeatlas/internal/application"
)

const defaultHotspotLimit = 10

// registerTools registers all codeatlas MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, logger *charmlog.Logger) {
	// 1. codeatlas_analyze
	s.AddTool(
		mcplib.NewTool("codeatlas_analyze",
			mcplib.WithDescription("Returns the full analysis report for the project as JSON: health index, per-file metrics, smells, hotspots and refactor plan"),
		),
		handleAnalyze(projectPath, logger),
	)

	// 2. codeatlas_hotspots
	s.AddTool(
		mcplib.NewTool("codeatlas_hotspots",
			mcplib.WithDescription("Returns the riskiest files of the project, highest risk first"),
			mcplib.WithNumber("limit",
				mcplib.Description(fmt.Sprintf("Maximum number of hotspots to return (default %d)", defaultHotspotLimit)),
			),
		),
		handleHotspots(projectPath, logger),
	)

	// 3. codeatlas_refactor_plan
	s.AddTool(
		mcplib.NewTool("codeatlas_refactor_plan",
			mcplib.WithDescription("Returns the prioritized refactor actions for the project"),
		),
		handleRefactorPlan(projectPath, logger),
	)

	// 4. codeatlas_analyze_source
	s.AddTool(
		mcplib.NewTool("codeatlas_analyze_source",
			mcplib.WithDescription("Analyzes a single in-memory source file; the language is taken from the filename extension"),
			mcplib.WithString("filename",
				mcplib.Required(),
				mcplib.Description("File name including extension, e.g. handlers.py"),
			),
			mcplib.WithString("content",
				mcplib.Required(),
				mcplib.Description("Full source text of the file"),
			),
		),
		handleAnalyzeSource(logger),
	)
}

// newService wires the standard outbound adapters into an AnalysisService.
func newService(logger *charmlog.Logger) *application.AnalysisService {
	det := detector.New()
	return application.NewAnalysisService(
		scanner.New(det.Extensions()...),
		det,
		parser.New(logger),
		config.New(),
		application.WithLogger(logger),
		application.WithGitInfo(gitinfo.New()),
	)
}

func handleAnalyze(projectPath string, logger *charmlog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		result, err := newService(logger).AnalyzeProject(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleHotspots(projectPath string, logger *charmlog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		limit := request.GetInt("limit", defaultHotspotLimit)
		if limit <= 0 {
			return errorResult("limit must be positive"), nil
		}

		result, err := newService(logger).AnalyzeProject(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		hotspots := result.Hotspots
		if len(hotspots) > limit {
			hotspots = hotspots[:limit]
		}
		return jsonResult(hotspots)
	}
}

func handleRefactorPlan(projectPath string, logger *charmlog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		result, err := newService(logger).AnalyzeProject(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(result.RefactorActions)
	}
}

func handleAnalyzeSource(logger *charmlog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		filename, err := request.RequireString("filename")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		content, err := request.RequireString("content")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := newService(logger).AnalyzeSources(ctx, filename, map[string]string{filename: content})
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
