package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vaultScope/internal/chain"
	"vaultScope/internal/config"
	"vaultScope/internal/indexer"
	"vaultScope/internal/storage"
	"vaultScope/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "indexer",
		Short:        "Vault factory event indexer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Index vault and position events from the chain",
		RunE:  runIndexer,
	}

	runCmd.Flags().String("rpc", "", "RPC URL")
	runCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	runCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	runCmd.Flags().StringSlice("address", nil, "restrict to contract addresses (comma-separated, optional)")
	runCmd.Flags().Uint64("batch-size", 2000, "blocks per batch")
	runCmd.Flags().String("sink", "jsonl", "row sink (jsonl or postgres)")
	runCmd.Flags().String("out", "./data/rows.jsonl", "output JSONL path for the jsonl sink")
	runCmd.Flags().String("pg-dsn", "", "Postgres DSN for the postgres sink")
	runCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	runCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	runCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	runCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract entity rows from raw logs offline",
		RunE:  runExtract,
	}

	extractCmd.Flags().String("in", "", "input raw logs JSONL")
	extractCmd.Flags().String("out", "./data/rows.jsonl", "output rows JSONL")
	extractCmd.Flags().String("errors", "./data/extract_errors.jsonl", "extract errors JSONL")
	extractCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(extractCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIndexer(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	addresses, err := indexer.ParseAddresses(cfg.Addresses)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	var sink storage.Sink
	var checkpoint indexer.CheckpointStore

	switch cfg.Sink {
	case "jsonl":
		sink = storage.NewJsonlSink(cfg.Out)
		if cfg.CheckpointEnabled {
			checkpoint = &indexer.FileCheckpointStore{Path: cfg.Checkpoint}
		}
	case "postgres":
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		sink = store
		if cfg.CheckpointEnabled {
			checkpoint = &indexer.DBCheckpointStore{Store: store, Name: "vault-indexer"}
		}
	default:
		return fmt.Errorf("unknown sink: %s", cfg.Sink)
	}

	runner := indexer.NewRunner(indexer.RunConfig{
		FromBlock:    cfg.FromBlock,
		ToBlock:      cfg.ToBlock,
		Addresses:    addresses,
		BatchSize:    cfg.BatchSize,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, sink, checkpoint, logger)

	logger.Info("run start",
		zap.String("rpc", cfg.RPCURL),
		zap.Uint64("from", cfg.FromBlock),
		zap.Uint64("to", cfg.ToBlock),
		zap.Int("addresses", len(addresses)),
		zap.String("sink", cfg.Sink),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
	)

	return runner.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
