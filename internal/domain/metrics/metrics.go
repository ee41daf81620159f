// Package metrics computes line-level measurements of source text.
package metrics

import (
	"regexp"
	"strings"
)

// CountLOC counts non-blank lines that are not comments. Lines containing a
// triple quote are not counted; an odd number of them opens or closes a
// docstring block.
func CountLOC(code string) int {
	loc := 0
	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)

		if quotes := strings.Count(trimmed, `"""`) + strings.Count(trimmed, `'''`); quotes > 0 {
			if quotes%2 == 1 {
				inBlock = !inBlock
			}
			continue
		}
		if inBlock {
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		loc++
	}
	return loc
}

// LineCount returns the number of newline-separated lines, counting a
// trailing partial line.
func LineCount(code string) int {
	return strings.Count(code, "\n") + 1
}

// Signature is a function declaration found by ParameterCounts.
type Signature struct {
	Line   int
	Params int
}

var signaturePattern = regexp.MustCompile(
	`def\s+\w+\s*\((.*?)\)|function\s+\w+\s*\((.*?)\)|func\s+(?:\([^)]*\)\s*)?\w+\s*\((.*?)\)`,
)

// ParameterCounts finds def/function/func signatures on a single line and
// counts their comma-separated parameters. Signatures without parameters
// are omitted.
func ParameterCounts(code string) []Signature {
	var sigs []Signature
	for _, m := range signaturePattern.FindAllStringSubmatchIndex(code, -1) {
		params := ""
		for g := 1; g <= 3; g++ {
			start, end := m[2*g], m[2*g+1]
			if start >= 0 && end > start {
				params = code[start:end]
				break
			}
		}
		if params == "" {
			continue
		}
		n := 0
		for _, p := range strings.Split(params, ",") {
			if strings.TrimSpace(p) != "" {
				n++
			}
		}
		sigs = append(sigs, Signature{
			Line:   strings.Count(code[:m[0]], "\n") + 1,
			Params: n,
		})
	}
	return sigs
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
