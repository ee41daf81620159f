package domain

import "fmt"

const (
	// DefaultComplexityThreshold is the complexity above which a file is
	// flagged with a High Complexity smell.
	DefaultComplexityThreshold = 10
	// DefaultMaxFileBytes caps how much of a single file is read.
	DefaultMaxFileBytes = 1 << 20
)

// ProjectConfig holds project-level configuration loaded from .codeatlas.yaml.
type ProjectConfig struct {
	ComplexityThreshold int      `yaml:"complexity_threshold" json:"complexity_threshold"`
	ExcludePaths        []string `yaml:"exclude_paths"        json:"exclude_paths,omitempty"`
	Languages           []string `yaml:"languages"            json:"languages,omitempty"`
	MaxFileBytes        int64    `yaml:"max_file_bytes"       json:"max_file_bytes"`
	Workers             int      `yaml:"workers"              json:"workers,omitempty"`
	MinHealth           float64  `yaml:"min_health"           json:"min_health,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		ComplexityThreshold: DefaultComplexityThreshold,
		MaxFileBytes:        DefaultMaxFileBytes,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if c.ComplexityThreshold == 0 {
		c.ComplexityThreshold = d.ComplexityThreshold
	}
	if c.MaxFileBytes == 0 {
		c.MaxFileBytes = d.MaxFileBytes
	}
	return c
}

// AllowsLanguage reports whether files of the given language are analyzed.
func (c ProjectConfig) AllowsLanguage(lang Language) bool {
	if len(c.Languages) == 0 {
		return true
	}
	for _, l := range c.Languages {
		if Language(l) == lang {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.ComplexityThreshold < 0 {
		return fmt.Errorf("complexity_threshold must be >= 0, 0 uses the default (got %d)", c.ComplexityThreshold)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0, 0 uses the default (got %d)", c.MaxFileBytes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	if c.MinHealth < 0 || c.MinHealth > 100 {
		return fmt.Errorf("min_health = %.2f (must be between 0 and 100)", c.MinHealth)
	}
	for _, l := range c.Languages {
		if !isSupportedLanguage(Language(l)) {
			return fmt.Errorf("unknown language %q in languages", l)
		}
	}
	return nil
}

func isSupportedLanguage(lang Language) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
