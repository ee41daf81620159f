package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codeatlas/codeatlas/internal/adapters/outbound/config"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/detector"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/facts"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/gitinfo"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/parser"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/progress"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/scanner"
	"github.com/codeatlas/codeatlas/internal/adapters/outbound/tui"
	"github.com/codeatlas/codeatlas/internal/application"
	"github.com/codeatlas/codeatlas/internal/domain"
)

var formats = []string{"tui", "json", "yaml", "badge"}

func newAnalyzeCmd(logger *charmlog.Logger) *cobra.Command {
	var (
		format              string
		projectName         string
		ciMode              bool
		minHealth           float64
		workers             int
		complexityThreshold int
		showProgress        bool
		factsPath           string
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a project and report its health",
		Long: `Measure every supported source file under path and report the health
index, the riskiest files and a refactor plan.

With --facts the scan is skipped and the report is computed from a JSON
document of precomputed file facts and smells.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(formats, format) {
				return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(formats, ", "))
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := config.New()
			cfg, err := loader.Load(absPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min-health") {
				minHealth = cfg.MinHealth
			}

			opts := []application.Option{
				application.WithLogger(logger),
				application.WithGitInfo(gitinfo.New()),
				application.WithWorkers(workers),
				application.WithComplexityThreshold(complexityThreshold),
			}
			if showProgress {
				opts = append(opts, application.WithProgress(func(label string, total int) application.Progress {
					return progress.NewTrackerTo(cmd.ErrOrStderr(), label, total)
				}))
			}
			det := detector.New()
			svc := application.NewAnalysisService(
				scanner.New(det.Extensions()...),
				det,
				parser.New(logger),
				loader,
				opts...,
			)

			var result *domain.AnalysisResult
			if factsPath != "" {
				fs, err := facts.LoadFile(factsPath)
				if err != nil {
					return err
				}
				files, smells := fs.Normalize()
				logger.Info("scoring facts", "file", factsPath, "files", len(files), "smells", len(smells))
				result = svc.ScoreFacts(projectName, cfg, files, smells)
			} else {
				result, err = svc.AnalyzeProject(cmd.Context(), absPath)
				if err != nil {
					return fmt.Errorf("analysis failed: %w", err)
				}
			}
			if projectName != "" {
				result.ProjectName = projectName
			}

			if err := render(cmd, format, result); err != nil {
				return err
			}

			if ciMode && result.HealthIndex < minHealth {
				return fmt.Errorf("health %.2f is below minimum %.2f", result.HealthIndex, minHealth)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tui", "Output format: tui, json, yaml or badge")
	cmd.Flags().StringVar(&projectName, "project-name", "", "Project name shown in the report (defaults to the directory name)")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if health is below --min-health")
	cmd.Flags().Float64Var(&minHealth, "min-health", 0, "Minimum health index for CI mode (defaults to min_health in .codeatlas.yaml)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files analyzed in parallel (0 = config value or 2x CPUs)")
	cmd.Flags().IntVar(&complexityThreshold, "complexity-threshold", 0, "Complexity above which a file is flagged (0 = config value)")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().StringVar(&factsPath, "facts", "", "Score a JSON facts document instead of scanning (- reads stdin)")

	return cmd
}

func render(cmd *cobra.Command, format string, result *domain.AnalysisResult) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case "badge":
		fmt.Fprintln(out, badgeURL(result.HealthIndex))
		return nil
	default:
		fmt.Fprint(out, tui.RenderReport(result))
		return nil
	}
}

func badgeURL(health float64) string {
	return fmt.Sprintf("https://img.shields.io/badge/health-%.1f%%2F100-%s", health, domain.BadgeColor(health))
}
