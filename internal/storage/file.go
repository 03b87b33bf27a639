package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/qualcanal/qualcanal/internal/match"
)

// FileStore keeps the latest snapshot of each source as a JSON file.
type FileStore struct {
	dataDir string
}

var _ Sink = (*FileStore)(nil)

// NewFileStore creates the data directory if needed. A leading ~/ expands to
// the user's home directory.
func NewFileStore(dataDir string) (*FileStore, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("file store requires a directory")
	}

	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) Backend() string { return "file" }

// snapshotPath returns the path to the snapshot file for source
func (s *FileStore) snapshotPath(source string) string {
	if source == "" {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", strings.ToLower(source)))
}

// SaveSnapshot replaces the source's snapshot file atomically.
func (s *FileStore) SaveSnapshot(_ context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := renameio.WriteFile(s.snapshotPath(snap.Source), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// LatestSnapshot loads the source's snapshot file.
func (s *FileStore) LatestSnapshot(_ context.Context, source string) (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(source))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Matches == nil {
		snap.Matches = []*match.Match{}
	}

	return &snap, nil
}

func (s *FileStore) Close() error { return nil }
