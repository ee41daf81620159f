package scoring

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/codeatlas/codeatlas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHotspots_Empty(t *testing.T) {
	assert.Empty(t, DetectHotspots(nil, nil))
}

func TestDetectHotspots_SingleRiskyFile(t *testing.T) {
	files := []domain.FileFacts{{Filename: "a.py", LOC: 600, Complexity: 25, NestingDepth: 5}}
	smells := smellsOf(domain.SeverityHigh, 2)

	got := DetectHotspots(files, smells)
	require.Len(t, got, 1)

	// 40 (complexity, capped) + 12 (2/5 smells) + 20 (size, capped) + 8.33 (5/6 nesting)
	h := got[0]
	assert.Equal(t, "a.py", h.File)
	assert.InDelta(t, 80.33, h.RiskScore, 1e-9)
	assert.Equal(t, 25.0, h.Complexity)
	assert.Equal(t, 2, h.SmellsCount)
	assert.Equal(t, domain.PriorityCritical, h.Priority)
}

func TestDetectHotspots_SmellCountUsesExactFilename(t *testing.T) {
	files := []domain.FileFacts{{Filename: "src/a.py"}, {Filename: "a.py"}}
	smells := []domain.SmellRecord{{File: "a.py"}, {File: "a.py"}, {File: "src/a.py"}, {File: "A.py"}}

	got := DetectHotspots(files, smells)
	byFile := map[string]int{}
	for _, h := range got {
		byFile[h.File] = h.SmellsCount
	}
	assert.Equal(t, 2, byFile["a.py"])
	assert.Equal(t, 1, byFile["src/a.py"])
}

func TestDetectHotspots_MissingFilenameDefaultsToUnknown(t *testing.T) {
	got := DetectHotspots([]domain.FileFacts{{}}, []domain.SmellRecord{{File: "unknown"}})
	require.Len(t, got, 1)
	assert.Equal(t, "unknown", got[0].File)
	assert.Equal(t, 1, got[0].SmellsCount)
}

func TestDetectHotspots_MalformedNumbersStayInRange(t *testing.T) {
	files := []domain.FileFacts{
		{Filename: "nan", Complexity: math.NaN()},
		{Filename: "neg", Complexity: -50, LOC: -10, NestingDepth: -3},
		{Filename: "inf", Complexity: math.Inf(1), LOC: 1 << 30, NestingDepth: 1 << 20},
	}
	got := DetectHotspots(files, nil)
	require.Len(t, got, 3)
	for _, h := range got {
		assert.GreaterOrEqual(t, h.RiskScore, 0.0, h.File)
		assert.LessOrEqual(t, h.RiskScore, 100.0, h.File)
	}
	assert.Equal(t, "inf", got[0].File)
	assert.Equal(t, 70.0, got[0].RiskScore)
}

func TestPriorityFor_Boundaries(t *testing.T) {
	assert.Equal(t, domain.PriorityCritical, PriorityFor(100))
	assert.Equal(t, domain.PriorityCritical, PriorityFor(70))
	assert.Equal(t, domain.PriorityHigh, PriorityFor(69.99))
	assert.Equal(t, domain.PriorityHigh, PriorityFor(50))
	assert.Equal(t, domain.PriorityMedium, PriorityFor(49.99))
	assert.Equal(t, domain.PriorityMedium, PriorityFor(30))
	assert.Equal(t, domain.PriorityLow, PriorityFor(29.99))
	assert.Equal(t, domain.PriorityLow, PriorityFor(0))
}

func TestDetectHotspots_TierBoundariesFromFacts(t *testing.T) {
	fiveSmells := func(file string) []domain.SmellRecord {
		out := make([]domain.SmellRecord, 5)
		for i := range out {
			out[i] = domain.SmellRecord{File: file}
		}
		return out
	}

	tests := []struct {
		name   string
		facts  domain.FileFacts
		smells []domain.SmellRecord
		score  float64
		want   domain.Priority
	}{
		{"exactly 70", domain.FileFacts{Filename: "f", Complexity: 20, LOC: 500, NestingDepth: 6}, nil, 70, domain.PriorityCritical},
		{"exactly 50", domain.FileFacts{Filename: "f", Complexity: 20, NestingDepth: 6}, nil, 50, domain.PriorityHigh},
		{"exactly 30", domain.FileFacts{Filename: "f"}, fiveSmells("f"), 30, domain.PriorityMedium},
		{"just under 30", domain.FileFacts{Filename: "f", Complexity: 14.995}, nil, 29.99, domain.PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectHotspots([]domain.FileFacts{tt.facts}, tt.smells)
			require.Len(t, got, 1)
			assert.InDelta(t, tt.score, got[0].RiskScore, 1e-9)
			assert.Equal(t, tt.want, got[0].Priority)
		})
	}
}

func TestDetectHotspots_SortedDescending(t *testing.T) {
	files := []domain.FileFacts{
		{Filename: "low", LOC: 10},
		{Filename: "high", Complexity: 20, LOC: 500},
		{Filename: "mid", Complexity: 10},
	}
	got := DetectHotspots(files, nil)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"high", "mid", "low"}, []string{got[0].File, got[1].File, got[2].File})
}

func TestDetectHotspots_TiesKeepInputOrder(t *testing.T) {
	files := []domain.FileFacts{
		{Filename: "b", LOC: 100},
		{Filename: "a", LOC: 100},
		{Filename: "top", LOC: 400},
		{Filename: "c", LOC: 100},
	}
	got := DetectHotspots(files, nil)
	names := make([]string, len(got))
	for i, h := range got {
		names[i] = h.File
	}
	assert.Equal(t, []string{"top", "b", "a", "c"}, names)
}

func randomFacts(r *rand.Rand, n int) ([]domain.FileFacts, []domain.SmellRecord) {
	files := make([]domain.FileFacts, n)
	var smells []domain.SmellRecord
	for i := range files {
		name := fmt.Sprintf("f%03d.go", i)
		// Coarse buckets so that ties are common.
		files[i] = domain.FileFacts{
			Filename:     name,
			LOC:          r.Intn(4) * 200,
			Complexity:   float64(r.Intn(3) * 10),
			NestingDepth: r.Intn(3) * 3,
		}
		for range r.Intn(3) {
			smells = append(smells, domain.SmellRecord{File: name, Severity: domain.SeverityLow})
		}
	}
	return files, smells
}

func TestRanker_ParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	files, smells := randomFacts(r, 300)

	want := DetectHotspots(files, smells)
	for _, workers := range []int{2, 4, 16} {
		got := Ranker{Workers: workers}.Detect(files, smells)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestDetectHotspots_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		files, smells := randomFacts(r, 1+r.Intn(40))
		got := DetectHotspots(files, smells)

		require.Len(t, got, len(files))

		index := make(map[string]int, len(files))
		for i, f := range files {
			index[f.Filename] = i
		}
		for i, h := range got {
			assert.GreaterOrEqual(t, h.RiskScore, 0.0)
			assert.LessOrEqual(t, h.RiskScore, 100.0)
			assert.Equal(t, PriorityFor(h.RiskScore), h.Priority)
			if i == 0 {
				continue
			}
			prev := got[i-1]
			assert.GreaterOrEqual(t, prev.RiskScore, h.RiskScore)
			if prev.RiskScore == h.RiskScore {
				assert.Less(t, index[prev.File], index[h.File], "ties must keep input order")
			}
		}

		assert.Equal(t, got, DetectHotspots(files, smells), "must be idempotent")
	}
}
