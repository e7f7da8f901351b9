// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/example/rpgdash/internal/ports/secondary"
)

// errCorrupt marks a slot file that exists but is not a JSON object.
var errCorrupt = errors.New("slot file is corrupt")

// SlotFile implements secondary.SlotStore as one JSON object on disk.
// Every Set rewrites the file through a temporary file and a rename, so a
// crash leaves either the old or the new contents. A file that cannot be
// parsed is reported by Get and moved aside to <path>.corrupt by the next
// write.
type SlotFile struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// Ensure SlotFile implements the interface
var _ secondary.SlotStore = (*SlotFile)(nil)

// NewSlotFile creates a slot store backed by the file at path.
func NewSlotFile(path string, logger *zap.Logger) *SlotFile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotFile{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *SlotFile) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *SlotFile) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := slots[key]
	return v, ok, nil
}

// Set replaces the value stored under key.
func (s *SlotFile) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.readForWrite()
	if err != nil {
		return err
	}
	slots[key] = value
	return s.write(slots)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SlotFile) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := slots[key]; !ok {
		return nil
	}
	delete(slots, key)
	return s.write(slots)
}

func (s *SlotFile) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}
	slots := map[string]string{}
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errCorrupt, s.path, err)
	}
	return slots, nil
}

// readForWrite is read for a write path: a corrupt file is moved aside and
// writing starts over from an empty set of slots.
func (s *SlotFile) readForWrite() (map[string]string, error) {
	slots, err := s.read()
	if !errors.Is(err, errCorrupt) {
		return slots, err
	}
	aside := s.path + ".corrupt"
	if err := os.Rename(s.path, aside); err != nil {
		return nil, fmt.Errorf("failed to move corrupt slot file aside: %w", err)
	}
	s.logger.Warn("slot file was corrupt, starting over",
		zap.String("path", s.path),
		zap.String("moved_to", aside),
		zap.Error(err),
	)
	return map[string]string{}, nil
}

func (s *SlotFile) write(slots map[string]string) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slot file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp slot file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp slot file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp slot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp slot file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace slot file: %w", err)
	}
	return nil
}
