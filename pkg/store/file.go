package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each entry as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store in baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) entryPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*Entry, error) {
	if !ValidID(id) {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.entryPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read entry file: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse entry: %w", err)
	}

	if e.IsExpired() {
		os.Remove(path)
		return nil, nil
	}
	return &e, nil
}

func (s *FileStore) Put(ctx context.Context, e *Entry) error {
	if !ValidID(e.ID) {
		return fmt.Errorf("invalid entry id %q", e.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if err := os.WriteFile(s.entryPath(e.ID), data, 0600); err != nil {
		return fmt.Errorf("write entry file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.entryPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove entry file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Meta
	err := s.each(func(path string, e *Entry) {
		if !e.IsExpired() {
			out = append(out, e.Meta())
		}
	})
	sortMeta(out)
	return out, err
}

func (s *FileStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	err := s.each(func(path string, e *Entry) {
		if e.IsExpired() && os.Remove(path) == nil {
			n++
		}
	})
	return n, err
}

// each decodes every entry file; unreadable files are skipped.
func (s *FileStore) each(fn func(path string, e *Entry)) error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read store dir: %w", err)
	}
	for _, de := range entries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		fn(path, &e)
	}
	return nil
}

// Path returns the base directory for entry files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
