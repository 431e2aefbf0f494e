package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pipe-runner/internal/core"
)

// DefaultScoreFile is where FileStore keeps scores unless overridden.
const DefaultScoreFile = "~/.runner/scores.yaml"

// FileStore keeps the latest score pair per mode in a YAML document:
//
//	normal:
//	  current_score: 4
//	  high_score: 17
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile prepares a file store at path. The file is created on first save.
func OpenFile(path string) (*FileStore, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// LoadScores reads the score pair for mode. A missing file yields zero values
// and no error; an unreadable or corrupt file yields zero values and an error.
func (f *FileStore) LoadScores(mode string) (core.ScoreInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return core.ScoreInfo{}, err
	}
	return doc[mode], nil
}

// SaveScores replaces the score pair for mode. A corrupt file is overwritten.
func (f *FileStore) SaveScores(mode string, info core.ScoreInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		doc = make(map[string]core.ScoreInfo)
	}
	doc[mode] = info

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storage: cannot encode scores: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; it lets FileStore stand in where a Store is closed.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) read() (map[string]core.ScoreInfo, error) {
	doc := make(map[string]core.ScoreInfo)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("storage: corrupt score file %s: %w", f.path, err)
	}
	if doc == nil {
		doc = make(map[string]core.ScoreInfo)
	}
	return doc, nil
}
