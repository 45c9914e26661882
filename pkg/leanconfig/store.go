package leanconfig

import (
	"fmt"
	"os"
	"path/filepath"

	lerrors "github.com/tradeops/leanctl/internal/errors"
)

// Canonical configuration file names, in search preference order. YAML is a
// superset of JSON, so an existing lean.json loads without conversion.
var configFileNames = []string{"lean.yaml", "lean.json"}

// Store owns the on-disk configuration file and the in-memory document
// loaded from it for the duration of one command invocation.
type Store struct {
	path string
	doc  *Document
}

// Load resolves and reads the configuration file. When explicitPath is given
// it must point at an existing regular file; otherwise the working directory
// and its ancestors are searched for the nearest canonical file.
func Load(explicitPath string) (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	return LoadFrom(cwd, explicitPath)
}

// LoadFrom is Load with an explicit search root, primarily for tests.
func LoadFrom(startDir, explicitPath string) (*Store, error) {
	path, err := resolvePath(startDir, explicitPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Store{path: path, doc: doc}, nil
}

func resolvePath(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		info, err := os.Stat(explicitPath)
		if err != nil || info.IsDir() {
			return "", &lerrors.ConfigNotFoundError{ExplicitPath: explicitPath}
		}
		return explicitPath, nil
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &lerrors.ConfigNotFoundError{SearchRoot: startDir}
		}
		dir = parent
	}
}

// Document returns the in-memory document. Mutations stay in memory until
// Save is called.
func (s *Store) Document() *Document {
	return s.doc
}

// Path returns the resolved location of the configuration file.
func (s *Store) Path() string {
	return s.path
}

// Save serializes the in-memory document back to its source file. Keys not
// recognized by this tool and comments round-trip unchanged.
func (s *Store) Save() error {
	data, err := s.doc.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
