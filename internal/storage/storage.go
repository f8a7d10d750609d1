package storage

import (
	"context"

	"vaultScope/internal/model"
)

// Sink consumes entity-change rows. Durability and cross-block ordering
// are the sink's concern, not the extractor's.
type Sink interface {
	ApplyRows(ctx context.Context, rows []model.EntityRow) error
}
