// Package state persists small workspace preferences (such as the last
// highlighted panel) across sessions.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

const (
	// DirEnv overrides the state directory (for testing).
	DirEnv = "TABSPACE_STATE_DIR"
	// DefaultDir is the state directory relative to the user's home.
	DefaultDir = ".tabspace"
	// FileName is the preferences file inside the state directory.
	FileName = "state.json"
)

// Dir returns the state directory: $TABSPACE_STATE_DIR if set, else ~/.tabspace.
func Dir() (string, error) {
	if d := os.Getenv(DirEnv); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DefaultDir), nil
}

// FileStore keeps preferences in a JSON object file. The file is read on
// first access and rewritten atomically on every Set.
// Safe for concurrent use.
type FileStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	values map[string]string
}

// NewFileStore returns a store backed by <dir>/state.json. The file and
// directory are created on first Set.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Get returns the value for key. A missing or unreadable file reads as empty.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and writes the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		// A corrupt file is replaced rather than blocking writes forever.
		s.values = map[string]string{}
		s.loaded = true
	}
	if cur, ok := s.values[key]; ok && cur == value {
		return nil
	}
	s.values[key] = value
	return s.flush()
}

// Delete removes key and writes the file.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// load must be called with s.mu held.
func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}
	values := map[string]string{}
	b, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read %s: %w", s.path, err)
	default:
		if err := json.Unmarshal(b, &values); err != nil {
			return fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	s.values = values
	s.loaded = true
	return nil
}

// flush must be called with s.mu held.
func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is an in-memory preferences store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
