package cli

import (
	charmlog "github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/codeatlas/codeatlas/internal/adapters/inbound/mcp"
)

func newMCPCmd(logger *charmlog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the codeatlas MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(logger))
	return cmd
}

func newMCPServeCmd(logger *charmlog.Logger) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start codeatlas MCP server (stdio)",
		Long:  "Start the codeatlas MCP server using stdio transport. AI coding assistants can then request health reports, hotspots and refactor plans for the project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			logger.Debug("starting MCP server", "path", projectPath)
			s := mcpadapter.NewCodeAtlasMCPServer(projectPath, logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
