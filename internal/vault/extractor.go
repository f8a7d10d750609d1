package vault

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"vaultScope/internal/model"
)

// Extract scans the block's logs in order and decodes the ones matching a
// known event signature into an EventBatch. Logs without topics or with an
// unknown topic0 are ignored. A log that matches a signature but is too
// short to decode fails the whole block: the batch is all-or-nothing.
func Extract(block model.Block) (model.EventBatch, error) {
	var batch model.EventBatch

	for i, log := range block.Logs {
		if len(log.Topics) == 0 {
			continue
		}

		switch log.Topics[0] {
		case VaultCreatedSig:
			event, err := decodeVaultCreated(block, log)
			if err != nil {
				return model.EventBatch{}, fmt.Errorf("block %d log %d: vault created: %w", block.Number, i, err)
			}
			batch.Vaults = append(batch.Vaults, event)
		case PositionOpenedSig:
			event, err := decodePositionOpened(block, log)
			if err != nil {
				return model.EventBatch{}, fmt.Errorf("block %d log %d: position opened: %w", block.Number, i, err)
			}
			batch.Positions = append(batch.Positions, event)
		}
	}

	return batch, nil
}

func decodeVaultCreated(block model.Block, log model.Log) (model.VaultEvent, error) {
	if len(log.Topics) < 3 {
		return model.VaultEvent{}, fmt.Errorf("expected 3 topics, got %d", len(log.Topics))
	}
	vaultID, err := wordUint64(log.Data)
	if err != nil {
		return model.VaultEvent{}, err
	}

	return model.VaultEvent{
		Address:     hexutil.Encode(log.Address.Bytes()),
		Token0:      log.Topics[1].Hex(),
		Token1:      log.Topics[2].Hex(),
		VaultID:     vaultID,
		BlockNumber: block.Number,
		Timestamp:   strconv.FormatUint(block.Timestamp, 10),
		Factory:     FactoryAddress,
	}, nil
}

func decodePositionOpened(block model.Block, log model.Log) (model.PositionEvent, error) {
	if len(log.Topics) < 4 {
		return model.PositionEvent{}, fmt.Errorf("expected 4 topics, got %d", len(log.Topics))
	}
	positionID, err := wordUint64(log.Data)
	if err != nil {
		return model.PositionEvent{}, err
	}

	return model.PositionEvent{
		PositionID:  positionID,
		Owner:       log.Topics[1].Hex(),
		Amount0:     log.Topics[2].Hex(),
		Amount1:     log.Topics[3].Hex(),
		BlockNumber: block.Number,
		Timestamp:   strconv.FormatUint(block.Timestamp, 10),
		Vault:       hexutil.Encode(log.Address.Bytes()),
	}, nil
}

// wordUint64 decodes the first 32-byte data word as a big-endian unsigned
// integer that must fit in 64 bits. The schema stores these ids as uint256;
// a value with any of the high 24 bytes set is rejected rather than
// truncated.
func wordUint64(data []byte) (uint64, error) {
	if len(data) < 32 {
		return 0, fmt.Errorf("expected 32 data bytes, got %d", len(data))
	}
	for _, b := range data[:24] {
		if b != 0 {
			return 0, fmt.Errorf("value exceeds uint64 range: %s", hexutil.Encode(data[:32]))
		}
	}
	return binary.BigEndian.Uint64(data[24:32]), nil
}
