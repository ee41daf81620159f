package cli

import (
	"context"
	"errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var verbose, quiet bool

	// logger writes to stderr; commands log progress, never results.
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "codeatlas",
	})

	cmd := &cobra.Command{
		Use:   "codeatlas",
		Short: "Find the files your codebase should fix first",
		Long:  "codeatlas scores the health of a codebase and turns its riskiest files into a prioritized refactor plan.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return errors.New("--verbose and --quiet cannot be used together")
			}
			logger.SetOutput(cmd.ErrOrStderr())
			switch {
			case quiet:
				logger.SetLevel(charmlog.ErrorLevel)
			case verbose:
				logger.SetLevel(charmlog.DebugLevel)
			default:
				logger.SetLevel(charmlog.InfoLevel)
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAnalyzeCmd(logger))
	cmd.AddCommand(newLanguagesCmd())
	cmd.AddCommand(newMCPCmd(logger))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
