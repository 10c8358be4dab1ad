package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const dataFileName = "data.json"

// FileStore implements KeyValue using a single JSON file.
// Every Set or Delete rewrites the whole file.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
	quota   int64
	logger  *zap.Logger
	closed  bool
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithQuota limits the combined size of keys and values in bytes.
func WithQuota(bytes int64) FileOption {
	return func(s *FileStore) {
		s.quota = bytes
	}
}

// WithLogger sets the logger used for recoverable problems.
func WithLogger(logger *zap.Logger) FileOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore opens or creates the store file inside dataDir.
func NewFileStore(dataDir string, opts ...FileOption) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &FileStore{
		path:    filepath.Join(dataDir, dataFileName),
		entries: make(map[string]string),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// load reads entries from the JSON file. A missing file is an empty store; a
// corrupt one is moved aside and the store starts empty.
func (s *FileStore) load() error {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(content, &entries); err != nil {
		aside := s.path + ".corrupt"
		s.logger.Warn("store file is corrupt, starting empty",
			zap.String("path", s.path),
			zap.String("moved_to", aside),
			zap.Error(err))
		if err := os.Rename(s.path, aside); err != nil {
			return fmt.Errorf("move corrupt store file: %w", err)
		}
		return nil
	}
	s.entries = entries
	return nil
}

// save writes entries to the JSON file through a temp file and rename.
func (s *FileStore) save(entries map[string]string) error {
	content, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.entries[key]
	return v, ok, nil
}

// Set replaces the value stored under key and persists the file.
// On failure the previous value is kept.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !fits(s.entries, s.quota, key, value) {
		return ErrQuotaExceeded
	}

	next := make(map[string]string, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[key] = value
	if err := s.save(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Delete removes key and persists the file.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.entries[key]; !ok {
		return nil
	}

	next := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		if k != key {
			next[k] = v
		}
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Usage returns the bytes currently used against the quota.
func (s *FileStore) Usage() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return usage(s.entries)
}

// Close marks the store closed. Writes are synchronous, so nothing is pending.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
