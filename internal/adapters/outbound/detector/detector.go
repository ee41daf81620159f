package detector

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/codeatlas/codeatlas/internal/domain"
)

var extensionLanguages = map[string]domain.Language{
	".py":   domain.LanguagePython,
	".js":   domain.LanguageJavaScript,
	".jsx":  domain.LanguageJavaScript,
	".ts":   domain.LanguageJavaScript,
	".tsx":  domain.LanguageJavaScript,
	".java": domain.LanguageJava,
	".cpp":  domain.LanguageCpp,
	".cc":   domain.LanguageCpp,
	".cxx":  domain.LanguageCpp,
	".c":    domain.LanguageCpp,
	".h":    domain.LanguageCpp,
	".hpp":  domain.LanguageCpp,
	".go":   domain.LanguageGo,
	".rs":   domain.LanguageRust,
	".sql":  domain.LanguageSQL,
	".sh":   domain.LanguageBash,
	".bash": domain.LanguageBash,
}

// LanguageDetector implements domain.LanguageDetector from file extensions.
type LanguageDetector struct{}

func New() *LanguageDetector {
	return &LanguageDetector{}
}

// Detect returns the language for filename, or LanguageUnknown.
func (d *LanguageDetector) Detect(filename string) domain.Language {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	return domain.LanguageUnknown
}

// Extensions returns every recognized extension, sorted.
func (d *LanguageDetector) Extensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ExtensionsFor groups the recognized extensions by language.
func (d *LanguageDetector) ExtensionsFor() map[domain.Language][]string {
	out := make(map[domain.Language][]string)
	for _, ext := range d.Extensions() {
		lang := extensionLanguages[ext]
		out[lang] = append(out[lang], ext)
	}
	return out
}
