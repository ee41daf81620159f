package scoring

import (
	"fmt"

	"github.com/codeatlas/codeatlas/internal/domain"
)

// Per-rule caps on generated actions.
const (
	maxComplexityActions   = 3
	maxNestingActions      = 2
	maxLongFunctionActions = 2

	// summaryThreshold is the smell count above which a summary action is added.
	summaryThreshold = 5
)

// Refactor action labels.
const (
	ActionImmediateRefactoring = "Immediate Refactoring Required"
	ActionReduceComplexity     = "Reduce Cyclomatic Complexity"
	ActionFlattenNesting       = "Flatten Nested Code"
	ActionSplitFunctions       = "Split Long Functions"
	ActionAddressSmells        = "Address Code Smells"
)

// GenerateRefactorPlan builds the prioritized action list. Rules are applied
// in a fixed order and each rule walks its input in the given order, so the
// result is the report's final ordering.
func GenerateRefactorPlan(hotspots []domain.Hotspot, smells []domain.SmellRecord) []domain.RefactorAction {
	actions := []domain.RefactorAction{}

	for _, h := range hotspots {
		if h.Priority != domain.PriorityCritical {
			continue
		}
		actions = append(actions, domain.RefactorAction{
			Priority: domain.PriorityCritical,
			Action:   ActionImmediateRefactoring,
			File:     h.File,
			Impact:   domain.LevelHigh,
			Effort:   domain.LevelHigh,
			Description: fmt.Sprintf("This file has a risk score of %s. "+
				"Break down complex logic, reduce nesting, and improve modularity.", formatScore(h.RiskScore)),
		})
	}

	for _, s := range firstOfType(smells, domain.SmellHighComplexity, maxComplexityActions) {
		actions = append(actions, domain.RefactorAction{
			Priority:    domain.PriorityHigh,
			Action:      ActionReduceComplexity,
			File:        s.File,
			Impact:      domain.LevelMedium,
			Effort:      domain.LevelMedium,
			Description: s.Suggestion,
		})
	}

	for _, s := range firstOfType(smells, domain.SmellDeepNesting, maxNestingActions) {
		actions = append(actions, domain.RefactorAction{
			Priority:    domain.PriorityHigh,
			Action:      ActionFlattenNesting,
			File:        s.File,
			Impact:      domain.LevelMedium,
			Effort:      domain.LevelLow,
			Description: "Use guard clauses and extract methods to reduce nesting depth",
		})
	}

	for _, s := range firstOfType(smells, domain.SmellLongFunction, maxLongFunctionActions) {
		actions = append(actions, domain.RefactorAction{
			Priority:    domain.PriorityMedium,
			Action:      ActionSplitFunctions,
			File:        s.File,
			Impact:      domain.LevelLow,
			Effort:      domain.LevelLow,
			Description: "Extract logical units into separate, well-named functions",
		})
	}

	if len(smells) > summaryThreshold {
		actions = append(actions, domain.RefactorAction{
			Priority:    domain.PriorityMedium,
			Action:      ActionAddressSmells,
			File:        "Multiple files",
			Impact:      domain.LevelMedium,
			Effort:      domain.LevelMedium,
			Description: fmt.Sprintf("Review and fix %d detected code smells across the codebase", len(smells)),
		})
	}

	return actions
}

// firstOfType returns up to limit smells of type t, in input order.
func firstOfType(smells []domain.SmellRecord, t domain.SmellType, limit int) []domain.SmellRecord {
	var out []domain.SmellRecord
	for _, s := range smells {
		if len(out) == limit {
			break
		}
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}
