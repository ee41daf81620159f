package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codeatlas/codeatlas/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	"venv":         true,
	"__pycache__":  true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct {
	// Extensions limits the scan to files with these (lower-case, dotted)
	// extensions. Empty means every file.
	Extensions []string
}

func New(extensions ...string) *FileScanner {
	return &FileScanner{Extensions: extensions}
}

func (s *FileScanner) Scan(root string, opts domain.ScanOptions) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	result := &domain.ScanResult{RootPath: absPath}

	if !info.IsDir() {
		result.RootPath = filepath.Dir(absPath)
		s.collect(result, absPath, filepath.Base(absPath), info.Size(), opts.MaxFileBytes)
		return result, nil
	}

	extraSkip := make(map[string]bool, len(opts.ExcludePaths))
	for _, p := range opts.ExcludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if err != nil {
			if path == absPath {
				return err
			}
			result.Skipped = append(result.Skipped, relPath)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[relPath]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			result.Skipped = append(result.Skipped, relPath)
			return nil
		}
		s.collect(result, path, relPath, fi.Size(), opts.MaxFileBytes)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	return result, nil
}

// collect reads one candidate file into the result, or records it as skipped.
func (s *FileScanner) collect(result *domain.ScanResult, absPath, relPath string, size, maxBytes int64) {
	if !s.allowed(relPath) {
		return
	}
	if maxBytes > 0 && size > maxBytes {
		result.Skipped = append(result.Skipped, relPath)
		return
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		result.Skipped = append(result.Skipped, relPath)
		return
	}
	result.Files = append(result.Files, domain.SourceFile{
		Path:    relPath,
		Content: strings.ToValidUTF8(string(data), "�"),
	})
}

func (s *FileScanner) allowed(path string) bool {
	if len(s.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
