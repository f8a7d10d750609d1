package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vaultScope/internal/storage/postgres"
)

// CheckpointStore persists the last fully processed block.
type CheckpointStore interface {
	Load(ctx context.Context) (uint64, bool, error)
	Save(ctx context.Context, block uint64) error
}

// FileCheckpointStore stores the checkpoint in a local JSON file.
type FileCheckpointStore struct {
	Path string
}

type checkpointRecord struct {
	LastProcessedBlock uint64 `json:"last_processed_block"`
	UpdatedAt          string `json:"updated_at"`
}

func (s *FileCheckpointStore) Load(_ context.Context) (uint64, bool, error) {
	if s == nil || s.Path == "" {
		return 0, false, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read checkpoint: %w", err)
	}

	var rec checkpointRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, false, fmt.Errorf("parse checkpoint: %w", err)
	}
	return rec.LastProcessedBlock, true, nil
}

func (s *FileCheckpointStore) Save(_ context.Context, block uint64) error {
	if s == nil || s.Path == "" {
		return nil
	}
	dir := filepath.Dir(s.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint dir: %w", err)
		}
	}

	rec := checkpointRecord{
		LastProcessedBlock: block,
		UpdatedAt:          time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint tmp: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("rename checkpoint: %w", err)
	}
	return nil
}

// DBCheckpointStore stores the checkpoint in the indexer_state table.
type DBCheckpointStore struct {
	Store *postgres.Store
	Name  string
}

func (s *DBCheckpointStore) Load(ctx context.Context) (uint64, bool, error) {
	return s.Store.LoadState(ctx, s.Name)
}

func (s *DBCheckpointStore) Save(ctx context.Context, block uint64) error {
	return s.Store.SaveState(ctx, s.Name, block)
}
