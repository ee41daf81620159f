package scoring

import (
	"cmp"
	"slices"

	"github.com/codeatlas/codeatlas/internal/domain"
	"github.com/sourcegraph/conc/pool"
)

// Component weights of the risk score. They sum to 100.
const (
	complexityWeight = 40.0
	smellWeight      = 30.0
	sizeWeight       = 20.0
	nestingWeight    = 10.0

	complexitySaturation = 20.0
	smellSaturation      = 5.0
	sizeSaturation       = 500.0
	nestingSaturation    = 6.0
)

// Ranker turns per-file facts into hotspots sorted by descending risk.
// With Workers > 1 files are scored concurrently; the output order does not
// depend on completion order.
type Ranker struct {
	Workers int
}

// DetectHotspots ranks files sequentially.
func DetectHotspots(files []domain.FileFacts, smells []domain.SmellRecord) []domain.Hotspot {
	return Ranker{}.Detect(files, smells)
}

// Detect returns one hotspot per input file, sorted by RiskScore descending.
// Files with equal scores keep their input order.
func (r Ranker) Detect(files []domain.FileFacts, smells []domain.SmellRecord) []domain.Hotspot {
	hotspots := make([]domain.Hotspot, len(files))
	if len(files) == 0 {
		return hotspots
	}

	counts := countSmellsByFile(smells)

	if r.Workers > 1 && len(files) > 1 {
		p := pool.New().WithMaxGoroutines(r.Workers)
		for i, f := range files {
			p.Go(func() {
				hotspots[i] = scoreFile(f, counts)
			})
		}
		p.Wait()
	} else {
		for i, f := range files {
			hotspots[i] = scoreFile(f, counts)
		}
	}

	slices.SortStableFunc(hotspots, func(a, b domain.Hotspot) int {
		return cmp.Compare(b.RiskScore, a.RiskScore)
	})
	return hotspots
}

// countSmellsByFile groups smells by exact file name once per run.
func countSmellsByFile(smells []domain.SmellRecord) map[string]int {
	counts := make(map[string]int)
	for _, s := range smells {
		counts[s.File]++
	}
	return counts
}

func scoreFile(f domain.FileFacts, smellCounts map[string]int) domain.Hotspot {
	filename := f.Filename
	if filename == "" {
		filename = "unknown"
	}
	complexity := finiteOr(f.Complexity, 0)
	smellCount := smellCounts[filename]

	risk := saturate(complexity, complexitySaturation)*complexityWeight +
		saturate(float64(smellCount), smellSaturation)*smellWeight +
		saturate(float64(f.LOC), sizeSaturation)*sizeWeight +
		saturate(float64(f.NestingDepth), nestingSaturation)*nestingWeight
	risk = clampScore(round2(risk))

	return domain.Hotspot{
		File:        filename,
		RiskScore:   risk,
		Complexity:  complexity,
		SmellsCount: smellCount,
		Priority:    PriorityFor(risk),
	}
}

// saturate scales v against its saturation point, capped at 1.
func saturate(v, at float64) float64 {
	return min(v/at, 1.0)
}

// PriorityFor maps a risk score to its tier. Boundaries are inclusive.
func PriorityFor(risk float64) domain.Priority {
	switch {
	case risk >= 70:
		return domain.PriorityCritical
	case risk >= 50:
		return domain.PriorityHigh
	case risk >= 30:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
