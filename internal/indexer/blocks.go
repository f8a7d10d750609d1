package indexer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"vaultScope/internal/model"
)

// GroupByBlock folds chain logs into per-block groups, preserving block
// order and the log order within each block. Removed (reorged-out) logs
// are dropped. Timestamps are filled in by the caller.
func GroupByBlock(logs []types.Log) []model.Block {
	blocks := make([]model.Block, 0)
	var current *model.Block

	for _, log := range logs {
		if log.Removed {
			continue
		}
		if current == nil || current.Number != log.BlockNumber {
			blocks = append(blocks, model.Block{Number: log.BlockNumber})
			current = &blocks[len(blocks)-1]
		}
		current.Logs = append(current.Logs, model.Log{
			Address: log.Address,
			Topics:  log.Topics,
			Data:    log.Data,
		})
	}

	return blocks
}

// GroupRecordsByBlock folds raw log records into per-block groups,
// preserving record order.
func GroupRecordsByBlock(records []model.LogRecord) [][]model.LogRecord {
	groups := make([][]model.LogRecord, 0)
	for _, record := range records {
		n := len(groups)
		if n == 0 || groups[n-1][0].BlockNumber != record.BlockNumber {
			groups = append(groups, []model.LogRecord{record})
			continue
		}
		groups[n-1] = append(groups[n-1], record)
	}
	return groups
}

// BlockFromRecords converts one block's raw log records into a Block.
// All records must share a block number; the block metadata is taken
// from the first record.
func BlockFromRecords(records []model.LogRecord) (model.Block, error) {
	if len(records) == 0 {
		return model.Block{}, fmt.Errorf("no records")
	}

	block := model.Block{
		Number:    records[0].BlockNumber,
		Timestamp: records[0].Timestamp,
		Logs:      make([]model.Log, 0, len(records)),
	}

	for _, record := range records {
		if record.BlockNumber != block.Number {
			return model.Block{}, fmt.Errorf("mixed block numbers: %d and %d", block.Number, record.BlockNumber)
		}
		if record.Removed {
			continue
		}

		log, err := logFromRecord(record)
		if err != nil {
			return model.Block{}, fmt.Errorf("log %d: %w", record.LogIndex, err)
		}
		block.Logs = append(block.Logs, log)
	}

	return block, nil
}

func logFromRecord(record model.LogRecord) (model.Log, error) {
	if !common.IsHexAddress(record.Address) {
		return model.Log{}, fmt.Errorf("invalid address: %s", record.Address)
	}

	topics := make([]common.Hash, 0, len(record.Topics))
	for _, topic := range record.Topics {
		data, err := hexutil.Decode(topic)
		if err != nil {
			return model.Log{}, fmt.Errorf("invalid topic: %w", err)
		}
		if len(data) != 32 {
			return model.Log{}, fmt.Errorf("invalid topic length: %d", len(data))
		}
		topics = append(topics, common.BytesToHash(data))
	}

	data, err := hexutil.Decode(record.Data)
	if err != nil {
		return model.Log{}, fmt.Errorf("invalid data: %w", err)
	}

	return model.Log{
		Address: common.HexToAddress(record.Address),
		Topics:  topics,
		Data:    data,
	}, nil
}
