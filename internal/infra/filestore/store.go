// Package filestore persists the work-item dataset to a single local file.
package filestore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/kanban/internal/domain"
)

// Store implements domain.DatasetStore using one CSV, JSON or YAML file.
// Every call takes an flock on a sidecar lock file; writes go to a temp
// file that is renamed over the data file.
type Store struct {
	codec    codec
	path     string
	lockPath string
	format   string
}

// New creates a Store for the given file path and format.
// The file does not need to exist; see Initialize.
func New(path, format string) (*Store, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}
	return &Store{
		codec:    c,
		path:     path,
		lockPath: path + ".lock",
		format:   format,
	}, nil
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Format returns the store format.
func (s *Store) Format() string {
	return s.format
}

// Load reads the dataset. A missing file returns domain.ErrNotInitialized.
func (s *Store) Load() (*domain.Dataset, error) {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(lock)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	recs, err := s.codec.decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return fromRecords(recs)
}

// Save replaces the stored dataset.
func (s *Store) Save(data *domain.Dataset) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	return s.write(data)
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	return s.Save(&domain.Dataset{})
}

func (s *Store) write(data *domain.Dataset) error {
	var buf bytes.Buffer
	if err := s.codec.encode(&buf, toRecords(data)); err != nil {
		return err
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// Ensure Store implements the persistence ports.
var (
	_ domain.DatasetStore     = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
