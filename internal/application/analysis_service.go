package application

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/codeatlas/codeatlas/internal/domain"
	"github.com/codeatlas/codeatlas/internal/domain/metrics"
	"github.com/codeatlas/codeatlas/internal/domain/scoring"
	"github.com/codeatlas/codeatlas/internal/domain/smells"
)

// DefaultProjectName names in-memory analyses that were not given one.
const DefaultProjectName = "Uploaded Project"

// Progress receives one Tick per extracted file.
type Progress interface {
	Tick()
	Finish(err error)
}

// ProgressFactory starts a Progress for a run over total files.
type ProgressFactory func(label string, total int) Progress

// AnalysisService orchestrates the analysis pipeline:
// config → scan → detect language → extract facts → detect smells → score.
type AnalysisService struct {
	scanner      domain.SourceScanner
	detector     domain.LanguageDetector
	analyzer     domain.CodeAnalyzer
	configLoader domain.ConfigLoader

	git                 domain.GitInfo
	logger              *log.Logger
	progress            ProgressFactory
	workers             int
	complexityThreshold int
	now                 func() time.Time
}

// Option configures an AnalysisService.
type Option func(*AnalysisService)

func WithLogger(l *log.Logger) Option {
	return func(s *AnalysisService) { s.logger = l }
}

// WithGitInfo records the HEAD commit of analyzed projects.
func WithGitInfo(g domain.GitInfo) Option {
	return func(s *AnalysisService) { s.git = g }
}

func WithProgress(f ProgressFactory) Option {
	return func(s *AnalysisService) { s.progress = f }
}

// WithWorkers overrides the configured parallelism. Zero keeps the config value.
func WithWorkers(n int) Option {
	return func(s *AnalysisService) { s.workers = n }
}

// WithComplexityThreshold overrides the configured High Complexity threshold.
func WithComplexityThreshold(n int) Option {
	return func(s *AnalysisService) { s.complexityThreshold = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *AnalysisService) { s.now = now }
}

func NewAnalysisService(
	scanner domain.SourceScanner,
	detector domain.LanguageDetector,
	analyzer domain.CodeAnalyzer,
	configLoader domain.ConfigLoader,
	opts ...Option,
) *AnalysisService {
	s := &AnalysisService{
		scanner:      scanner,
		detector:     detector,
		analyzer:     analyzer,
		configLoader: configLoader,
		logger:       log.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeProject analyzes every supported source file below root.
func (s *AnalysisService) AnalyzeProject(ctx context.Context, root string) (*domain.AnalysisResult, error) {
	cfg, err := s.configLoader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	start := s.now()
	scan, err := s.scanner.Scan(root, domain.ScanOptions{
		ExcludePaths: cfg.ExcludePaths,
		MaxFileBytes: cfg.MaxFileBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	s.logger.Info("scanned project", "root", scan.RootPath, "files", len(scan.Files), "skipped", len(scan.Skipped))
	for _, path := range scan.Skipped {
		s.logger.Debug("skipped file", "file", path, "reason", "unreadable or oversized")
	}
	s.logger.Debug("scan finished", "elapsed", s.now().Sub(start))

	result, err := s.analyze(ctx, projectName(scan.RootPath), scan.Files, cfg)
	if err != nil {
		return nil, err
	}
	if s.git != nil {
		hash, err := s.git.CommitHash(scan.RootPath)
		if err != nil {
			s.logger.Debug("no commit hash", "err", err)
		}
		result.CommitHash = hash
	}
	return result, nil
}

// AnalyzeSources analyzes in-memory files keyed by name with the default
// configuration. Files are processed in sorted name order so repeated runs
// produce identical reports.
func (s *AnalysisService) AnalyzeSources(ctx context.Context, name string, files map[string]string) (*domain.AnalysisResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	slices.Sort(names)

	sources := make([]domain.SourceFile, len(names))
	for i, n := range names {
		sources[i] = domain.SourceFile{Path: n, Content: files[n]}
	}
	if name == "" {
		name = DefaultProjectName
	}
	return s.analyze(ctx, name, sources, domain.DefaultConfig())
}

// ScoreFacts runs only the scoring core over externally produced facts.
// cfg supplies the worker count when no WithWorkers override is set.
func (s *AnalysisService) ScoreFacts(name string, cfg domain.ProjectConfig, facts []domain.FileFacts, smellList []domain.SmellRecord) *domain.AnalysisResult {
	if name == "" {
		name = DefaultProjectName
	}
	bySmell := make(map[string][]domain.SmellType)
	for _, sm := range smellList {
		bySmell[sm.File] = append(bySmell[sm.File], sm.Type)
	}
	files := make([]domain.FileMetrics, len(facts))
	for i, f := range facts {
		files[i] = domain.FileMetrics{
			Filename:     f.Filename,
			Language:     s.detector.Detect(f.Filename),
			LOC:          f.LOC,
			Complexity:   f.Complexity,
			NestingDepth: f.NestingDepth,
			Smells:       bySmell[f.Filename],
		}
		if files[i].Smells == nil {
			files[i].Smells = []domain.SmellType{}
		}
	}
	workers := s.resolveWorkers(cfg)
	s.logger.Debug("scoring facts", "files", len(files), "smells", len(smellList), "workers", workers)
	return s.score(name, files, smellList, workers)
}

type extracted struct {
	metrics domain.FileMetrics
	smells  []domain.SmellRecord
}

func (s *AnalysisService) analyze(ctx context.Context, name string, files []domain.SourceFile, cfg domain.ProjectConfig) (*domain.AnalysisResult, error) {
	type job struct {
		file domain.SourceFile
		lang domain.Language
	}
	jobs := make([]job, 0, len(files))
	for _, f := range files {
		lang := s.detector.Detect(f.Path)
		switch {
		case lang == domain.LanguageUnknown:
			s.logger.Debug("skipped file", "file", f.Path, "reason", "unknown language")
		case !cfg.AllowsLanguage(lang):
			s.logger.Debug("skipped file", "file", f.Path, "reason", "language not enabled", "language", lang)
		default:
			jobs = append(jobs, job{file: f, lang: lang})
		}
	}
	if len(jobs) == 0 {
		return nil, domain.ErrNoAnalyzableFiles
	}

	threshold := cfg.ComplexityThreshold
	if s.complexityThreshold > 0 {
		threshold = s.complexityThreshold
	}
	detector := smells.New(threshold)
	workers := s.resolveWorkers(cfg)

	var prog Progress
	if s.progress != nil {
		prog = s.progress("analyzing", len(jobs))
	}

	start := s.now()
	results := make([]extracted, len(jobs))
	p := pool.New().WithMaxGoroutines(workers)
	for i, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		p.Go(func() {
			raw := s.analyzer.Analyze(j.lang, j.file)
			found := detector.Detect(j.file, raw)
			types := make([]domain.SmellType, len(found))
			for k, sm := range found {
				types[k] = sm.Type
			}
			results[i] = extracted{
				metrics: domain.FileMetrics{
					Filename:     j.file.Path,
					Language:     j.lang,
					LOC:          metrics.CountLOC(j.file.Content),
					Functions:    len(raw.Functions),
					Classes:      len(raw.Classes),
					Complexity:   raw.Complexity,
					NestingDepth: raw.NestingDepth,
					Smells:       types,
				},
				smells: found,
			}
			if prog != nil {
				prog.Tick()
			}
		})
	}
	p.Wait()
	if err := ctx.Err(); err != nil {
		if prog != nil {
			prog.Finish(err)
		}
		return nil, fmt.Errorf("extracting facts: %w", err)
	}
	if prog != nil {
		prog.Finish(nil)
	}
	s.logger.Debug("extraction finished", "files", len(jobs), "workers", workers, "elapsed", s.now().Sub(start))

	fileMetrics := make([]domain.FileMetrics, len(results))
	var allSmells []domain.SmellRecord
	for i, r := range results {
		fileMetrics[i] = r.metrics
		allSmells = append(allSmells, r.smells...)
	}

	result := s.score(name, fileMetrics, allSmells, workers)
	s.logger.Info("analysis complete",
		"project", name,
		"files", result.TotalFiles,
		"loc", result.TotalLOC,
		"smells", len(result.Smells),
		"health", result.HealthIndex,
	)
	return result, nil
}

func (s *AnalysisService) score(name string, files []domain.FileMetrics, smellList []domain.SmellRecord, workers int) *domain.AnalysisResult {
	facts := make([]domain.FileFacts, len(files))
	complexities := make([]float64, len(files))
	totalLOC := 0
	for i, f := range files {
		facts[i] = f.Facts()
		complexities[i] = f.Complexity
		totalLOC += f.LOC
	}
	avgComplexity := metrics.Mean(complexities)

	health := scoring.CalculateHealth(facts, smellList, float64(totalLOC), avgComplexity)
	hotspots := scoring.Ranker{Workers: workers}.Detect(facts, smellList)
	actions := scoring.GenerateRefactorPlan(hotspots, smellList)

	if smellList == nil {
		smellList = []domain.SmellRecord{}
	}
	return &domain.AnalysisResult{
		ID:              uuid.New().String(),
		ProjectName:     name,
		Timestamp:       s.now().UTC(),
		HealthIndex:     health,
		HealthStatus:    domain.HealthStatus(health),
		TotalFiles:      len(files),
		TotalLOC:        totalLOC,
		AvgComplexity:   math.Round(avgComplexity*100) / 100,
		Files:           files,
		Smells:          smellList,
		Hotspots:        hotspots,
		RefactorActions: actions,
	}
}

func (s *AnalysisService) resolveWorkers(cfg domain.ProjectConfig) int {
	switch {
	case s.workers > 0:
		return s.workers
	case cfg.Workers > 0:
		return cfg.Workers
	default:
		return 2 * runtime.NumCPU()
	}
}

func projectName(root string) string {
	name := filepath.Base(root)
	if name == "." || name == string(filepath.Separator) {
		return DefaultProjectName
	}
	return name
}
