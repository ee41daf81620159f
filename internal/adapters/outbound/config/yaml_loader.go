package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/codeatlas/codeatlas/internal/domain"
)

const (
	fileName = ".codeatlas.yaml"

	// EnvComplexityThreshold overrides complexity_threshold from the file.
	EnvComplexityThreshold = "CODEATLAS_COMPLEXITY_THRESHOLD"
)

// YAMLLoader implements domain.ConfigLoader by reading .codeatlas.yaml.
type YAMLLoader struct {
	lookupEnv func(string) (string, bool)
}

// New creates a YAMLLoader that reads overrides from the process environment.
func New() *YAMLLoader { return &YAMLLoader{lookupEnv: os.LookupEnv} }

// WithEnv replaces the environment lookup, mainly for tests.
func (l *YAMLLoader) WithEnv(lookup func(string) (string, bool)) *YAMLLoader {
	l.lookupEnv = lookup
	return l
}

// Load reads .codeatlas.yaml from root. A missing file yields DefaultConfig.
// When root names a file rather than a directory, the file is looked up
// next to it.
func (l *YAMLLoader) Load(root string) (domain.ProjectConfig, error) {
	dir := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		dir = filepath.Dir(root)
	}

	cfg := domain.ProjectConfig{}
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.ProjectConfig{}, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return domain.ProjectConfig{}, err
	}

	// Validate before defaults so zero values written by the user are caught.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg.WithDefaults(), nil
}

func (l *YAMLLoader) applyEnv(cfg *domain.ProjectConfig) error {
	if l.lookupEnv == nil {
		return nil
	}
	v, ok := l.lookupEnv(EnvComplexityThreshold)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s=%q: must be a positive integer", EnvComplexityThreshold, v)
	}
	cfg.ComplexityThreshold = n
	return nil
}
