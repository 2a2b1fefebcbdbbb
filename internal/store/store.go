// Package store persists Go values to binary files with encoding/gob.
package store

import (
	"encoding/gob"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Store saves and loads gob-encoded objects
type Store struct {
	logger *zap.Logger
}

// NewStore creates a new Store
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Save encodes v into path, replacing any existing file
func (s *Store) Save(path string, v any) error {
	s.logger.Debug("Serialising object to file", zap.String("file", path))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(v); err != nil {
		return fmt.Errorf("failed to encode object: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close object file: %w", err)
	}
	return nil
}

// Load decodes the object stored in path into v, which must be a pointer
func (s *Store) Load(path string, v any) error {
	s.logger.Debug("Deserialising object from file", zap.String("file", path))

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open object file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("failed to decode object: %w", err)
	}
	return nil
}
