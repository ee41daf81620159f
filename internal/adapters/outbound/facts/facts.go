// Package facts reads externally produced file facts and smells from JSON.
package facts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/codeatlas/codeatlas/internal/domain"
)

// Decode reads one {"files": [...], "smells": [...]} document. Members with
// the wrong shape are left for domain.FactSet to coerce.
func Decode(r io.Reader) (domain.FactSet, error) {
	var fs domain.FactSet
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return domain.FactSet{}, fmt.Errorf("decoding facts: %w", err)
	}
	return fs, nil
}

// LoadFile decodes the facts document at path. A path of "-" reads stdin.
func LoadFile(path string) (domain.FactSet, error) {
	if path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.FactSet{}, fmt.Errorf("opening facts file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
