package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vaultScope/internal/config"
	"vaultScope/internal/entity"
	"vaultScope/internal/indexer"
	"vaultScope/internal/model"
	"vaultScope/internal/vault"
)

func runExtract(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadExtract(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
	}

	records, err := readLogRecords(cfg.In)
	if err != nil {
		return err
	}

	outWriter, err := newJSONLWriter(cfg.Out)
	if err != nil {
		return err
	}
	defer outWriter.Close()

	errWriter, err := newJSONLWriter(cfg.Errors)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	logger.Info("extract start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Int("records", len(records)),
	)

	var blocks, rows, failed int
	for _, group := range indexer.GroupRecordsByBlock(records) {
		blocks++

		// One malformed log fails its whole block; other blocks still
		// get processed.
		block, err := indexer.BlockFromRecords(group)
		if err != nil {
			failed++
			writeExtractError(errWriter, model.DecodeError{BlockNumber: group[0].BlockNumber, Error: err.Error()})
			continue
		}

		batch, err := vault.Extract(block)
		if err != nil {
			failed++
			writeExtractError(errWriter, model.DecodeError{BlockNumber: block.Number, Error: err.Error()})
			continue
		}

		for _, row := range entity.ToRows(batch) {
			if err := outWriter.Write(row); err != nil {
				return err
			}
			rows++
		}
	}

	logger.Info("extract complete",
		zap.Int("blocks", blocks),
		zap.Int("rows", rows),
		zap.Int("failed_blocks", failed),
	)

	return nil
}

func readLogRecords(path string) ([]model.LogRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	records := make([]model.LogRecord, 0)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record model.LogRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("parse input line %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	return records, nil
}

type jsonlWriter struct {
	file   *os.File
	writer *bufio.Writer
}

func newJSONLWriter(path string) (*jsonlWriter, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &jsonlWriter{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (w *jsonlWriter) Write(value interface{}) error {
	line, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.writer.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

func (w *jsonlWriter) Close() error {
	if w == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

func writeExtractError(writer *jsonlWriter, errRecord model.DecodeError) {
	if writer == nil {
		return
	}
	_ = writer.Write(errRecord)
}
