package store

import (
	"cmp"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sync"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

// FileStore keeps one JSON file per definition in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store rooted at baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "file store needs a directory")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create store dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Symbols may hold characters that are unsafe in file names, so they are
// path-escaped. The symbol itself is read back from the file contents.
func (s *FileStore) defPath(symbol string) string {
	return filepath.Join(s.baseDir, url.PathEscape(symbol)+".json")
}

func (s *FileStore) List(ctx context.Context) ([]registry.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read store dir")
	}

	var defs []registry.Definition
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		def, err := readDefinition(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b registry.Definition) int { return cmp.Compare(a.Symbol, b.Symbol) })
	return defs, nil
}

func (s *FileStore) Get(ctx context.Context, symbol string) (registry.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.defPath(symbol)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return registry.Definition{}, NotFound(symbol)
	}
	return readDefinition(path)
}

func (s *FileStore) Put(ctx context.Context, def registry.Definition) error {
	if err := ValidateKey(def); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "marshal definition %q", def.Symbol)
	}
	if err := os.WriteFile(s.defPath(def.Symbol), data, 0o600); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write definition %q", def.Symbol)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.defPath(symbol)); err != nil {
		if os.IsNotExist(err) {
			return NotFound(symbol)
		}
		return errs.Wrap(errs.ErrCodeInternal, err, "remove definition %q", symbol)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the definition files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func readDefinition(path string) (registry.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Definition{}, errs.Wrap(errs.ErrCodeInternal, err, "read %s", filepath.Base(path))
	}
	var def registry.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return registry.Definition{}, errs.Wrap(errs.ErrCodeInternal, err, "parse %s", filepath.Base(path))
	}
	return def, nil
}

var _ Store = (*FileStore)(nil)
