// Package smells flags rule violations in a single source file.
package smells

import (
	"fmt"
	"strconv"

	"github.com/codeatlas/codeatlas/internal/domain"
	"github.com/codeatlas/codeatlas/internal/domain/metrics"
)

// Rule thresholds. The complexity threshold is configurable per detector.
const (
	longFileLines    = 50
	maxNestingDepth  = 4
	largeClassFuncs  = 10
	maxParameterList = 5
)

// Detector applies the smell rules to one file at a time.
type Detector struct {
	ComplexityThreshold int
}

// New returns a Detector; a non-positive threshold selects the default.
func New(complexityThreshold int) *Detector {
	if complexityThreshold <= 0 {
		complexityThreshold = domain.DefaultComplexityThreshold
	}
	return &Detector{ComplexityThreshold: complexityThreshold}
}

// Detect returns the smells of one file in rule order.
func (d *Detector) Detect(file domain.SourceFile, facts domain.RawFacts) []domain.SmellRecord {
	var out []domain.SmellRecord
	out = append(out, d.longFunctions(file, facts)...)
	out = append(out, d.deepNesting(file, facts)...)
	out = append(out, d.highComplexity(file, facts)...)
	out = append(out, d.largeClass(file, facts)...)
	out = append(out, d.manyParameters(file)...)
	return out
}

func (d *Detector) longFunctions(file domain.SourceFile, facts domain.RawFacts) []domain.SmellRecord {
	lines := metrics.LineCount(file.Content)
	if lines <= longFileLines || len(facts.Functions) == 0 {
		return nil
	}
	return []domain.SmellRecord{{
		Type:       domain.SmellLongFunction,
		Severity:   domain.SeverityMedium,
		File:       file.Path,
		Line:       1,
		Message:    fmt.Sprintf("File contains %d lines with %d functions", lines, len(facts.Functions)),
		Suggestion: "Consider breaking down large functions",
	}}
}

func (d *Detector) deepNesting(file domain.SourceFile, facts domain.RawFacts) []domain.SmellRecord {
	if facts.NestingDepth <= maxNestingDepth {
		return nil
	}
	return []domain.SmellRecord{{
		Type:       domain.SmellDeepNesting,
		Severity:   domain.SeverityHigh,
		File:       file.Path,
		Line:       1,
		Message:    fmt.Sprintf("Nesting depth %d", facts.NestingDepth),
		Suggestion: "Refactor nested logic",
	}}
}

func (d *Detector) highComplexity(file domain.SourceFile, facts domain.RawFacts) []domain.SmellRecord {
	if facts.Complexity <= float64(d.ComplexityThreshold) {
		return nil
	}
	return []domain.SmellRecord{{
		Type:       domain.SmellHighComplexity,
		Severity:   domain.SeverityHigh,
		File:       file.Path,
		Line:       1,
		Message:    "Complexity " + strconv.FormatFloat(facts.Complexity, 'f', -1, 64),
		Suggestion: "Reduce branching",
	}}
}

func (d *Detector) largeClass(file domain.SourceFile, facts domain.RawFacts) []domain.SmellRecord {
	if len(facts.Classes) == 0 || len(facts.Functions) <= largeClassFuncs {
		return nil
	}
	return []domain.SmellRecord{{
		Type:       domain.SmellLargeClass,
		Severity:   domain.SeverityMedium,
		File:       file.Path,
		Line:       1,
		Message:    fmt.Sprintf("%d methods", len(facts.Functions)),
		Suggestion: "Split into smaller classes",
	}}
}

func (d *Detector) manyParameters(file domain.SourceFile) []domain.SmellRecord {
	var out []domain.SmellRecord
	for _, sig := range metrics.ParameterCounts(file.Content) {
		if sig.Params <= maxParameterList {
			continue
		}
		out = append(out, domain.SmellRecord{
			Type:       domain.SmellTooManyParameters,
			Severity:   domain.SeverityLow,
			File:       file.Path,
			Line:       sig.Line,
			Message:    fmt.Sprintf("%d parameters", sig.Params),
			Suggestion: "Use parameter objects",
		})
	}
	return out
}
