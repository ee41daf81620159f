package domain

import "math"

// FactSet is a loosely typed batch of externally produced facts, as decoded
// from JSON. Members that are not arrays are treated as empty.
type FactSet struct {
	Files  any `json:"files"`
	Smells any `json:"smells"`
}

// Normalize coerces the batch into typed facts and smells.
func (fs FactSet) Normalize() ([]FileFacts, []SmellRecord) {
	rawFiles := asList(fs.Files)
	rawSmells := asList(fs.Smells)

	files := make([]FileFacts, 0, len(rawFiles))
	for _, rf := range rawFiles {
		files = append(files, NormalizeFileFacts(asMap(rf)))
	}
	smells := make([]SmellRecord, 0, len(rawSmells))
	for _, rs := range rawSmells {
		smells = append(smells, NormalizeSmell(asMap(rs)))
	}
	return files, smells
}

// NormalizeFileFacts is the single coerce-or-default step for one file's
// facts. Complexity defaults to 1, every other number to 0, the filename to
// "unknown". Both snake_case and camelCase keys are accepted.
func NormalizeFileFacts(raw map[string]any) FileFacts {
	f := FileFacts{
		Filename:     asString(lookup(raw, "filename"), "unknown"),
		LOC:          asCount(lookup(raw, "loc")),
		Complexity:   nonNegative(asNumber(lookup(raw, "complexity"), 1)),
		NestingDepth: asCount(lookup(raw, "nesting_depth", "nestingDepth")),
	}
	if f.Filename == "" {
		f.Filename = "unknown"
	}
	return f
}

// NormalizeSmell coerces one smell record. Unknown types and severities
// become the zero value and therefore match no bucket downstream.
func NormalizeSmell(raw map[string]any) SmellRecord {
	return SmellRecord{
		Type:       ParseSmellType(asString(lookup(raw, "type"), "")),
		Severity:   ParseSeverity(asString(lookup(raw, "severity"), "")),
		File:       asString(lookup(raw, "file"), ""),
		Line:       asCount(lookup(raw, "line")),
		Message:    asString(lookup(raw, "message"), ""),
		Suggestion: asString(lookup(raw, "suggestion"), ""),
	}
}

func lookup(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v
		}
	}
	return nil
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func asNumber(v any, def float64) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func nonNegative(f float64) float64 {
	return max(f, 0)
}

// asCount coerces v to a count in [0, math.MaxInt32]. Larger values
// saturate instead of overflowing int.
func asCount(v any) int {
	return int(min(nonNegative(asNumber(v, 0)), math.MaxInt32))
}
