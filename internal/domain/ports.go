package domain

import "errors"

var (
	// ErrNoFiles is returned when a request carries no source files at all.
	ErrNoFiles = errors.New("no files provided")
	// ErrNoAnalyzableFiles is returned when every provided file was skipped.
	ErrNoAnalyzableFiles = errors.New("no analyzable files found")
)

// Language identifies the lexical adapter used for a source file.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
	LanguageCpp        Language = "cpp"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageSQL        Language = "sql"
	LanguageBash       Language = "bash"
	LanguageUnknown    Language = "unknown"
)

// SupportedLanguages lists every language an adapter exists for.
var SupportedLanguages = []Language{
	LanguagePython, LanguageJavaScript, LanguageJava, LanguageCpp,
	LanguageGo, LanguageRust, LanguageSQL, LanguageBash,
}

// SourceFile is one file handed to the analysis pipeline.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"-"`
}

// ScanOptions narrows what a SourceScanner returns.
type ScanOptions struct {
	ExcludePaths []string
	MaxFileBytes int64
}

// ScanResult holds the source files discovered under a root.
type ScanResult struct {
	RootPath string       `json:"root_path"`
	Files    []SourceFile `json:"files"`
	Skipped  []string     `json:"skipped,omitempty"`
}

// RawFacts is what a language adapter extracts from one file.
type RawFacts struct {
	Functions    []string `json:"functions"`
	Classes      []string `json:"classes"`
	Complexity   float64  `json:"complexity"`
	NestingDepth int      `json:"nesting_depth"`
}

// SourceScanner discovers source files below a root path.
type SourceScanner interface {
	Scan(root string, opts ScanOptions) (*ScanResult, error)
}

// LanguageDetector maps a filename to a language.
type LanguageDetector interface {
	Detect(filename string) Language
}

// CodeAnalyzer extracts raw facts from a source file.
type CodeAnalyzer interface {
	Analyze(lang Language, file SourceFile) RawFacts
}

// ConfigLoader loads project configuration from the analyzed root.
type ConfigLoader interface {
	Load(root string) (ProjectConfig, error)
}

// GitInfo reports repository metadata for the analyzed root.
type GitInfo interface {
	CommitHash(root string) (string, error)
}
