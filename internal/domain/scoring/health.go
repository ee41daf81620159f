package scoring

import "github.com/codeatlas/codeatlas/internal/domain"

// Penalty caps. Each penalty is computed independently and subtracted from
// a perfect score of 100.
const (
	maxComplexityPenalty = 30.0
	maxSmellPenalty      = 40.0
	maxSizePenalty       = 15.0
	maxNestingPenalty    = 15.0

	complexityPenaltyFrom = 10.0
	sizePenaltyFrom       = 1000.0
	nestingPenaltyFrom    = 4
)

// CalculateHealth reduces one analysis run to a health index in [0, 100],
// rounded to two decimals. NaN inputs are treated as 0.
func CalculateHealth(files []domain.FileFacts, smells []domain.SmellRecord, totalLOC, avgComplexity float64) float64 {
	totalLOC = finiteOr(totalLOC, 0)
	avgComplexity = finiteOr(avgComplexity, 0)

	score := 100.0
	score -= complexityPenalty(avgComplexity)
	score -= smellPenalty(smells)
	score -= sizePenalty(totalLOC)
	score -= nestingPenalty(files)

	return clampScore(round2(score))
}

func complexityPenalty(avgComplexity float64) float64 {
	if avgComplexity <= complexityPenaltyFrom {
		return 0
	}
	return min((avgComplexity-complexityPenaltyFrom)*2, maxComplexityPenalty)
}

// smellPenalty weighs smells across the whole run: high=5, medium=3, low=1.
func smellPenalty(smells []domain.SmellRecord) float64 {
	var high, medium, low int
	for _, s := range smells {
		switch s.Severity {
		case domain.SeverityHigh:
			high++
		case domain.SeverityMedium:
			medium++
		case domain.SeverityLow:
			low++
		}
	}
	return min(float64(high*5+medium*3+low), maxSmellPenalty)
}

func sizePenalty(totalLOC float64) float64 {
	if totalLOC <= sizePenaltyFrom {
		return 0
	}
	return min((totalLOC-sizePenaltyFrom)/1000*5, maxSizePenalty)
}

func nestingPenalty(files []domain.FileFacts) float64 {
	maxNesting := 0
	for _, f := range files {
		maxNesting = max(maxNesting, f.NestingDepth)
	}
	if maxNesting <= nestingPenaltyFrom {
		return 0
	}
	return min(float64(maxNesting-nestingPenaltyFrom)*3, maxNestingPenalty)
}
