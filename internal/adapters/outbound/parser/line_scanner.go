package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/codeatlas/codeatlas/internal/domain"
)

type nestingMode int

const (
	nestBraces nestingMode = iota
	nestIndent
	nestNone
)

const tabWidth = 4

// grammar is the lexical description of one language. Declarations are
// recognised by line prefix, or by pattern when a prefix cannot tell a
// declaration from a statement.
type grammar struct {
	funcPrefixes  []string
	classPrefixes []string
	funcPattern   *regexp.Regexp
	caseFold      bool
	comments      []string
	nesting       nestingMode
	decisions     *regexp.Regexp
}

var (
	cFamilyDecisions = regexp.MustCompile(`\b(?:if|for|while|case|catch)\b|&&|\|\||\?`)
	pythonDecisions  = regexp.MustCompile(`\b(?:if|elif|for|while|except|and|or)\b`)
	rustDecisions    = regexp.MustCompile(`\b(?:if|for|while|loop|match)\b|=>|&&|\|\|`)
	sqlDecisions     = regexp.MustCompile(`(?i)\b(?:case|when|if|while|loop)\b`)
	bashDecisions    = regexp.MustCompile(`\b(?:if|elif|for|while|until|case)\b|&&|\|\|`)

	javaMethod = regexp.MustCompile(`^(?:(?:public|private|protected|static|final|abstract|synchronized|native)\s+)+[\w<>\[\],.? ]+\s+\w+\s*\([^;]*$`)
	cppFunc    = regexp.MustCompile(`^[\w:<>*&,\s]+[\s*&]\w[\w:~]*\s*\([^;]*\)\s*(?:const\s*)?(?:override\s*)?\{?\s*$`)
	bashFunc   = regexp.MustCompile(`^[A-Za-z_][\w-]*\s*\(\)\s*\{?`)
)

var grammars = map[domain.Language]grammar{
	domain.LanguagePython: {
		funcPrefixes:  []string{"def ", "async def "},
		classPrefixes: []string{"class "},
		comments:      []string{"#"},
		nesting:       nestIndent,
		decisions:     pythonDecisions,
	},
	domain.LanguageJavaScript: {
		funcPrefixes:  []string{"function ", "async function ", "export function ", "export async function ", "export default function "},
		classPrefixes: []string{"class ", "export class ", "export default class "},
		comments:      []string{"//", "/*", "*"},
		nesting:       nestBraces,
		decisions:     cFamilyDecisions,
	},
	domain.LanguageJava: {
		classPrefixes: []string{"class ", "public class ", "abstract class ", "public abstract class ", "final class ", "public final class ", "interface ", "public interface ", "enum ", "public enum "},
		funcPattern:   javaMethod,
		comments:      []string{"//", "/*", "*"},
		nesting:       nestBraces,
		decisions:     cFamilyDecisions,
	},
	domain.LanguageCpp: {
		classPrefixes: []string{"class ", "struct "},
		funcPattern:   cppFunc,
		comments:      []string{"//", "/*", "*", "#"},
		nesting:       nestBraces,
		decisions:     cFamilyDecisions,
	},
	domain.LanguageGo: {
		funcPrefixes:  []string{"func "},
		classPrefixes: []string{"type "},
		comments:      []string{"//", "/*", "*"},
		nesting:       nestBraces,
		decisions:     cFamilyDecisions,
	},
	domain.LanguageRust: {
		funcPrefixes:  []string{"fn ", "pub fn ", "async fn ", "pub async fn ", "pub(crate) fn ", "const fn ", "pub const fn "},
		classPrefixes: []string{"struct ", "pub struct ", "enum ", "pub enum ", "trait ", "pub trait "},
		comments:      []string{"//", "/*", "*"},
		nesting:       nestBraces,
		decisions:     rustDecisions,
	},
	domain.LanguageSQL: {
		funcPrefixes:  []string{"create function ", "create or replace function ", "create procedure ", "create or replace procedure "},
		classPrefixes: []string{"create table ", "create view ", "create or replace view "},
		caseFold:      true,
		comments:      []string{"--", "/*", "*"},
		nesting:       nestNone,
		decisions:     sqlDecisions,
	},
	domain.LanguageBash: {
		funcPrefixes: []string{"function "},
		funcPattern:  bashFunc,
		comments:     []string{"#"},
		nesting:      nestBraces,
		decisions:    bashDecisions,
	},
}

// controlWords never start a function declaration in the pattern-matched
// grammars.
var controlWords = []string{"if", "for", "while", "switch", "return", "else", "catch", "new", "do"}

// LineScanner is the line-oriented fallback used for every language
// without a real parser.
type LineScanner struct{}

func NewLineScanner() *LineScanner {
	return &LineScanner{}
}

// Scan extracts facts from the file. Unknown languages use the Python
// grammar's declaration prefixes with brace nesting, which is how files of
// an unrecognised type were treated historically.
func (s *LineScanner) Scan(lang domain.Language, file domain.SourceFile) domain.RawFacts {
	g, ok := grammars[lang]
	if !ok {
		g = grammar{
			funcPrefixes:  []string{"def ", "function "},
			classPrefixes: []string{"class "},
			comments:      []string{"#", "//"},
			nesting:       nestBraces,
			decisions:     cFamilyDecisions,
		}
	}

	facts := domain.RawFacts{
		Functions: []string{},
		Classes:   []string{},
	}
	lines := strings.Split(file.Content, "\n")
	decisions := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || g.isComment(line) {
			continue
		}
		match := line
		if g.caseFold {
			match = strings.ToLower(line)
		}
		switch {
		case hasAnyPrefix(match, g.classPrefixes):
			facts.Classes = append(facts.Classes, line)
		case hasAnyPrefix(match, g.funcPrefixes):
			facts.Functions = append(facts.Functions, line)
		case g.funcPattern != nil && !startsWithControl(line) && g.funcPattern.MatchString(line):
			facts.Functions = append(facts.Functions, line)
		}
		decisions += len(g.decisions.FindAllStringIndex(line, -1))
	}

	facts.Complexity = roundFacts(1 + float64(decisions)/float64(max(len(facts.Functions), 1)))
	switch g.nesting {
	case nestBraces:
		facts.NestingDepth = braceDepth(lines, g)
	case nestIndent:
		facts.NestingDepth = indentDepth(lines, g)
	}
	return facts
}

func (g grammar) isComment(line string) bool {
	return hasAnyPrefix(line, g.comments)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func startsWithControl(line string) bool {
	for _, w := range controlWords {
		if line == w || strings.HasPrefix(line, w+" ") || strings.HasPrefix(line, w+"(") {
			return true
		}
	}
	return false
}

// braceDepth tracks the deepest unclosed '{'. Braces inside string literals
// and trailing line comments are ignored.
func braceDepth(lines []string, g grammar) int {
	depth, deepest := 0, 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if g.isComment(line) {
			continue
		}
		var quote rune
		escaped := false
		for i, r := range line {
			if quote != 0 {
				switch {
				case escaped:
					escaped = false
				case r == '\\':
					escaped = true
				case r == quote:
					quote = 0
				}
				continue
			}
			if r == '/' && strings.HasPrefix(line[i:], "//") {
				break
			}
			switch r {
			case '"', '\'', '`':
				quote = r
			case '{':
				depth++
				deepest = max(deepest, depth)
			case '}':
				depth = max(depth-1, 0)
			}
		}
	}
	return deepest
}

// indentDepth measures nesting as indentation in units of the smallest
// indent used in the file.
func indentDepth(lines []string, g grammar) int {
	widths := make([]int, 0, len(lines))
	unit := 0
	for _, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || g.isComment(trimmed) {
			continue
		}
		w := indentWidth(raw)
		widths = append(widths, w)
		if w > 0 && (unit == 0 || w < unit) {
			unit = w
		}
	}
	if unit == 0 {
		return 0
	}
	deepest := 0
	for _, w := range widths {
		deepest = max(deepest, w/unit)
	}
	return deepest
}

func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += tabWidth
		default:
			return w
		}
	}
	return w
}

func roundFacts(v float64) float64 {
	return math.Round(v*100) / 100
}
