package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/adapters/outbound/detector"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/tui"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their file extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderLanguages(detector.New().ExtensionsFor()))
			return nil
		},
	}
}
