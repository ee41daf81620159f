package detector_test

import (
	"testing"

	"github.com/codeatlas/codeatlas/internal/adapters/outbound/detector"
	"github.com/codeatlas/codeatlas/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	d := detector.New()
	tests := map[string]domain.Language{
		"app.py":          domain.LanguagePython,
		"src/App.TSX":     domain.LanguageJavaScript,
		"Main.java":       domain.LanguageJava,
		"lib/vec.hpp":     domain.LanguageCpp,
		"kernel.c":        domain.LanguageCpp,
		"cmd/main.go":     domain.LanguageGo,
		"src/lib.rs":      domain.LanguageRust,
		"schema.sql":      domain.LanguageSQL,
		"deploy.bash":     domain.LanguageBash,
		"README.md":       domain.LanguageUnknown,
		"Makefile":        domain.LanguageUnknown,
		"archive.tar.zip": domain.LanguageUnknown,
	}
	for name, want := range tests {
		assert.Equal(t, want, d.Detect(name), name)
	}
}

func TestExtensions_CoverEverySupportedLanguage(t *testing.T) {
	byLang := detector.New().ExtensionsFor()
	for _, lang := range domain.SupportedLanguages {
		assert.NotEmpty(t, byLang[lang], "no extensions for %s", lang)
	}
	assert.NotContains(t, byLang, domain.LanguageUnknown)
}

func TestExtensions_Sorted(t *testing.T) {
	exts := detector.New().Extensions()
	assert.IsNonDecreasing(t, exts)
	assert.Contains(t, exts, ".go")
}
