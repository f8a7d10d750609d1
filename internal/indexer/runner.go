package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"vaultScope/internal/chain"
	"vaultScope/internal/entity"
	"vaultScope/internal/storage"
	"vaultScope/internal/vault"
)

// RunConfig holds runtime settings for the indexer.
type RunConfig struct {
	FromBlock    uint64
	ToBlock      uint64
	Addresses    []common.Address
	BatchSize    uint64
	MaxRetries   int
	RetryBackoff time.Duration
}

// Runner streams logs from the chain, extracts vault and position events
// per block, and applies the resulting entity rows to a sink.
type Runner struct {
	cfg        RunConfig
	chain      *chain.Client
	sink       storage.Sink
	checkpoint CheckpointStore
	logger     *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, chainClient *chain.Client, sink storage.Sink, checkpoint CheckpointStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		chain:      chainClient,
		sink:       sink,
		checkpoint: checkpoint,
		logger:     logger,
	}
}

// Run executes the indexing loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.sink == nil {
		return fmt.Errorf("sink is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}

	chainID, err := r.chain.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.chain.LatestBlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	if r.checkpoint != nil {
		last, ok, err := r.checkpoint.Load(ctx)
		if err != nil {
			return err
		}
		if ok && last >= from {
			from = last + 1
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", last), zap.Uint64("from", from))
		}
	}

	if from > to {
		r.logger.Info("nothing to sync", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	r.logger.Info("indexer start",
		zap.String("chain_id", chainID.String()),
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Uint64("batch_size", r.cfg.BatchSize),
	)

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, blockRange := range ranges {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		logs, err := r.filterLogsWithRetry(ctx, blockRange.From, blockRange.To)
		if err != nil {
			return fmt.Errorf("filter logs: %w", err)
		}

		var totalRows int
		for _, block := range GroupByBlock(logs) {
			ts, err := r.blockTimestampWithRetry(ctx, block.Number)
			if err != nil {
				return fmt.Errorf("block timestamp %d: %w", block.Number, err)
			}
			block.Timestamp = ts

			batch, err := vault.Extract(block)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			if batch.Empty() {
				continue
			}

			rows := entity.ToRows(batch)
			if err := r.sink.ApplyRows(ctx, rows); err != nil {
				return fmt.Errorf("apply rows block %d: %w", block.Number, err)
			}
			totalRows += len(rows)
		}

		if r.checkpoint != nil {
			if err := r.checkpoint.Save(ctx, blockRange.To); err != nil {
				return err
			}
		}

		r.logger.Info("batch complete",
			zap.Int("logs", len(logs)),
			zap.Int("rows", totalRows),
			zap.Uint64("from", blockRange.From),
			zap.Uint64("to", blockRange.To),
		)
	}

	return nil
}

func (r *Runner) filterLogsWithRetry(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	var logs []types.Log
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		logs, err = r.chain.FilterLogs(ctx, fromBlock, toBlock, r.cfg.Addresses, vault.Topic0Filter())
		if err != nil {
			r.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", fromBlock), zap.Uint64("to", toBlock))
		}
		return err
	})
	return logs, err
}

func (r *Runner) blockTimestampWithRetry(ctx context.Context, blockNumber uint64) (uint64, error) {
	var ts uint64
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		ts, err = r.chain.BlockTimestamp(ctx, blockNumber)
		if err != nil {
			r.logger.Warn("block timestamp fetch failed", zap.Error(err), zap.Uint64("block_number", blockNumber))
		}
		return err
	})
	return ts, err
}
