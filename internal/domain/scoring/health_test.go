package scoring

import (
	"math"
	"testing"

	"github.com/codeatlas/codeatlas/internal/domain"
	"github.com/stretchr/testify/assert"
)

func smellsOf(sev domain.Severity, n int) []domain.SmellRecord {
	out := make([]domain.SmellRecord, n)
	for i := range out {
		out[i] = domain.SmellRecord{Type: domain.SmellHighComplexity, Severity: sev, File: "a.py"}
	}
	return out
}

func TestCalculateHealth_EmptyRunIsPerfect(t *testing.T) {
	assert.Equal(t, 100.0, CalculateHealth(nil, nil, 0, 0))
}

func TestCalculateHealth_SingleRiskyFile(t *testing.T) {
	files := []domain.FileFacts{{Filename: "a.py", LOC: 600, Complexity: 25, NestingDepth: 5}}
	smells := smellsOf(domain.SeverityHigh, 2)

	// complexity 30 (capped) + smells 10 + size 0 + nesting 3
	assert.Equal(t, 57.0, CalculateHealth(files, smells, 600, 25))
}

func TestCalculateHealth_PenaltyThresholds(t *testing.T) {
	tests := []struct {
		name          string
		files         []domain.FileFacts
		totalLOC      float64
		avgComplexity float64
		want          float64
	}{
		{"complexity at threshold", nil, 0, 10, 100},
		{"complexity just over", nil, 0, 11, 98},
		{"complexity capped", nil, 0, 100, 70},
		{"size at threshold", nil, 1000, 0, 100},
		{"size partial", nil, 2000, 0, 95},
		{"size capped", nil, 50000, 0, 85},
		{"nesting at threshold", []domain.FileFacts{{NestingDepth: 4}}, 0, 0, 100},
		{"nesting over", []domain.FileFacts{{NestingDepth: 6}}, 0, 0, 94},
		{"nesting capped", []domain.FileFacts{{NestingDepth: 40}}, 0, 0, 85},
		{"nesting uses max file", []domain.FileFacts{{NestingDepth: 1}, {NestingDepth: 5}, {NestingDepth: 2}}, 0, 0, 97},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateHealth(tt.files, nil, tt.totalLOC, tt.avgComplexity), 1e-9)
		})
	}
}

func TestCalculateHealth_SmellWeights(t *testing.T) {
	assert.Equal(t, 95.0, CalculateHealth(nil, smellsOf(domain.SeverityHigh, 1), 0, 0))
	assert.Equal(t, 97.0, CalculateHealth(nil, smellsOf(domain.SeverityMedium, 1), 0, 0))
	assert.Equal(t, 99.0, CalculateHealth(nil, smellsOf(domain.SeverityLow, 1), 0, 0))
	assert.Equal(t, 60.0, CalculateHealth(nil, smellsOf(domain.SeverityHigh, 50), 0, 0), "smell penalty caps at 40")
}

func TestCalculateHealth_UnknownSeverityIgnored(t *testing.T) {
	smells := []domain.SmellRecord{{Severity: ""}, {Severity: "catastrophic"}}
	assert.Equal(t, 100.0, CalculateHealth(nil, smells, 0, 0))
}

func TestCalculateHealth_AllPenaltiesCappedStaysInRange(t *testing.T) {
	files := []domain.FileFacts{{NestingDepth: 100}}
	got := CalculateHealth(files, smellsOf(domain.SeverityHigh, 100), 1e9, 1e9)
	assert.Equal(t, 0.0, got)
}

func TestCalculateHealth_NaNTreatedAsZero(t *testing.T) {
	assert.Equal(t, 100.0, CalculateHealth(nil, nil, math.NaN(), math.NaN()))
}

func TestCalculateHealth_RoundsToTwoDecimals(t *testing.T) {
	// size penalty (1333.4-1000)/1000*5 = 1.667
	got := CalculateHealth(nil, nil, 1333.4, 0)
	assert.Equal(t, 98.33, got)
}

func TestCalculateHealth_MonotonicInComplexity(t *testing.T) {
	prev := CalculateHealth(nil, nil, 0, 0)
	for c := 0.0; c <= 40; c += 0.5 {
		got := CalculateHealth(nil, nil, 0, c)
		assert.LessOrEqual(t, got, prev, "complexity %.1f", c)
		prev = got
	}
}

func TestCalculateHealth_MonotonicInSmells(t *testing.T) {
	for _, sev := range []domain.Severity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		prev := CalculateHealth(nil, nil, 0, 0)
		for n := 1; n <= 20; n++ {
			got := CalculateHealth(nil, smellsOf(sev, n), 0, 0)
			assert.LessOrEqual(t, got, prev, "%s x%d", sev, n)
			prev = got
		}
	}
}

func TestCalculateHealth_Idempotent(t *testing.T) {
	files := []domain.FileFacts{{LOC: 1200, NestingDepth: 7}}
	smells := smellsOf(domain.SeverityMedium, 3)
	assert.Equal(t, CalculateHealth(files, smells, 1200, 13.7), CalculateHealth(files, smells, 1200, 13.7))
}
