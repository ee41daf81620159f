package domain

import (
	"strings"
	"time"

	"github.com/fatih/camelcase"
)

// Severity is the weight class of a detected code smell.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ParseSeverity maps a free-form string to a Severity. Unknown values yield
// the empty Severity, which matches none of the penalty buckets.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(s)
	default:
		return ""
	}
}

// SmellType is the closed vocabulary of rule violations the detector emits.
type SmellType string

const (
	SmellLongFunction      SmellType = "Long Function"
	SmellDeepNesting       SmellType = "Deep Nesting"
	SmellHighComplexity    SmellType = "High Complexity"
	SmellLargeClass        SmellType = "Large Class"
	SmellTooManyParameters SmellType = "Too Many Parameters"
)

// SmellTypes lists every known smell type in detection order.
var SmellTypes = []SmellType{
	SmellLongFunction,
	SmellDeepNesting,
	SmellHighComplexity,
	SmellLargeClass,
	SmellTooManyParameters,
}

// ParseSmellType maps a free-form string to a SmellType, or "" if unknown.
// Spelling variants such as "DeepNesting", "deep_nesting" and "deep nesting"
// all resolve to SmellDeepNesting.
func ParseSmellType(s string) SmellType {
	key := smellKey(s)
	if key == "" {
		return ""
	}
	for _, t := range SmellTypes {
		if smellKey(string(t)) == key {
			return t
		}
	}
	return ""
}

func smellKey(s string) string {
	var words []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}) {
		for _, w := range camelcase.Split(part) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, " ")
}

// Priority ranks hotspots and refactor actions.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Level rates the impact or effort of a refactor action.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// FileFacts are the normalized per-file measurements that feed the scoring core.
type FileFacts struct {
	Filename     string  `json:"filename"`
	LOC          int     `json:"loc"`
	Complexity   float64 `json:"complexity"`
	NestingDepth int     `json:"nesting_depth"`
}

// SmellRecord is a single rule violation found in one file.
type SmellRecord struct {
	Type       SmellType `json:"type"       yaml:"type"`
	Severity   Severity  `json:"severity"   yaml:"severity"`
	File       string    `json:"file"       yaml:"file"`
	Line       int       `json:"line"       yaml:"line"`
	Message    string    `json:"message"    yaml:"message"`
	Suggestion string    `json:"suggestion" yaml:"suggestion"`
}

// Hotspot is the composite risk assessment of one file.
type Hotspot struct {
	File        string   `json:"file"         yaml:"file"`
	RiskScore   float64  `json:"risk_score"   yaml:"risk_score"`
	Complexity  float64  `json:"complexity"   yaml:"complexity"`
	SmellsCount int      `json:"smells_count" yaml:"smells_count"`
	Priority    Priority `json:"priority"     yaml:"priority"`
}

// RefactorAction is one step of the prioritized remediation plan.
type RefactorAction struct {
	Priority    Priority `json:"priority"    yaml:"priority"`
	Action      string   `json:"action"      yaml:"action"`
	File        string   `json:"file"        yaml:"file"`
	Impact      Level    `json:"impact"      yaml:"impact"`
	Effort      Level    `json:"effort"      yaml:"effort"`
	Description string   `json:"description" yaml:"description"`
}

// FileMetrics is the per-file section of an analysis report.
type FileMetrics struct {
	Filename     string      `json:"filename"      yaml:"filename"`
	Language     Language    `json:"language"      yaml:"language"`
	LOC          int         `json:"loc"           yaml:"loc"`
	Functions    int         `json:"functions"     yaml:"functions"`
	Classes      int         `json:"classes"       yaml:"classes"`
	Complexity   float64     `json:"complexity"    yaml:"complexity"`
	NestingDepth int         `json:"nesting_depth" yaml:"nesting_depth"`
	Smells       []SmellType `json:"smells"        yaml:"smells"`
}

// Facts projects the metrics onto the inputs of the scoring core.
func (m FileMetrics) Facts() FileFacts {
	return FileFacts{
		Filename:     m.Filename,
		LOC:          m.LOC,
		Complexity:   m.Complexity,
		NestingDepth: m.NestingDepth,
	}
}

// AnalysisResult is the full report of one analysis run.
type AnalysisResult struct {
	ID              string           `json:"id"                    yaml:"id"`
	ProjectName     string           `json:"project_name"          yaml:"project_name"`
	Timestamp       time.Time        `json:"timestamp"             yaml:"timestamp"`
	CommitHash      string           `json:"commit_hash,omitempty" yaml:"commit_hash,omitempty"`
	HealthIndex     float64          `json:"health_index"          yaml:"health_index"`
	HealthStatus    string           `json:"health_status"         yaml:"health_status"`
	TotalFiles      int              `json:"total_files"           yaml:"total_files"`
	TotalLOC        int              `json:"total_loc"             yaml:"total_loc"`
	AvgComplexity   float64          `json:"avg_complexity"        yaml:"avg_complexity"`
	Files           []FileMetrics    `json:"files"                 yaml:"files"`
	Smells          []SmellRecord    `json:"smells"                yaml:"smells"`
	Hotspots        []Hotspot        `json:"hotspots"              yaml:"hotspots"`
	RefactorActions []RefactorAction `json:"refactor_actions"      yaml:"refactor_actions"`
}

// HealthStatus labels a health index the way the dashboard does.
func HealthStatus(index float64) string {
	switch {
	case index >= 80:
		return "Excellent"
	case index >= 60:
		return "Good"
	case index >= 40:
		return "Fair"
	default:
		return "Needs Attention"
	}
}

// BadgeColor maps a health index to a shields.io color.
func BadgeColor(index float64) string {
	switch {
	case index >= 80:
		return "brightgreen"
	case index >= 60:
		return "yellow"
	case index >= 40:
		return "orange"
	default:
		return "red"
	}
}
