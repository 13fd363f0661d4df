// Package graphstore provides blob storage for materialized connection
// graphs. Fetching a graph is the only I/O-bound step around the hops
// engine; once a graph is in memory, computation never blocks.
package graphstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for materialized graphs.
type StorageClient interface {
	PutGraph(ctx context.Context, graphID string, data []byte) error
	GetGraph(ctx context.Context, graphID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(graphID string) string {
	return filepath.Join(s.BaseDir, "graphs", graphID+".json")
}

// PutGraph stores a graph blob.
func (s *LocalStorage) PutGraph(ctx context.Context, graphID string, data []byte) error {
	path := s.path(graphID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetGraph retrieves a graph blob.
func (s *LocalStorage) GetGraph(ctx context.Context, graphID string) ([]byte, error) {
	return os.ReadFile(s.path(graphID))
}
