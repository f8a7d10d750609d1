package vault

import (
	"math"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"vaultScope/internal/model"
)

func dataWord(value uint64) []byte {
	word := make([]byte, 32)
	word[24] = byte(value >> 56)
	word[25] = byte(value >> 48)
	word[26] = byte(value >> 40)
	word[27] = byte(value >> 32)
	word[28] = byte(value >> 24)
	word[29] = byte(value >> 16)
	word[30] = byte(value >> 8)
	word[31] = byte(value)
	return word
}

func vaultLog(address common.Address, id uint64) model.Log {
	return model.Log{
		Address: address,
		Topics: []common.Hash{
			VaultCreatedSig,
			common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000aa"),
			common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000bb"),
		},
		Data: dataWord(id),
	}
}

func positionLog(address common.Address, id uint64) model.Log {
	return model.Log{
		Address: address,
		Topics: []common.Hash{
			PositionOpenedSig,
			common.HexToHash("0x0000000000000000000000002222222222222222222222222222222222222222"),
			common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000003e8"),
			common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000007d0"),
		},
		Data: dataWord(id),
	}
}

func TestExtractEmptyBlock(t *testing.T) {
	batch, err := Extract(model.Block{Number: 100, Timestamp: 1700000000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !batch.Empty() {
		t.Fatalf("expected empty batch, got %+v", batch)
	}
}

func TestExtractIgnoresUnknownTopics(t *testing.T) {
	block := model.Block{
		Number:    100,
		Timestamp: 1700000000,
		Logs: []model.Log{
			{
				Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
				Topics:  []common.Hash{common.HexToHash("0xdead")},
				Data:    dataWord(1),
			},
			// No topics at all: cannot match, skipped.
			{Address: common.HexToAddress("0x2222222222222222222222222222222222222222")},
		},
	}

	batch, err := Extract(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !batch.Empty() {
		t.Fatalf("expected empty batch, got %+v", batch)
	}
}

func TestExtractVaultCreated(t *testing.T) {
	factory := common.HexToAddress(FactoryAddress)
	block := model.Block{
		Number:    36000000,
		Timestamp: 1700000000,
		Logs:      []model.Log{vaultLog(factory, 42)},
	}

	batch, err := Extract(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Vaults) != 1 || len(batch.Positions) != 0 {
		t.Fatalf("batch size mismatch: %+v", batch)
	}

	vault := batch.Vaults[0]
	if vault.VaultID != 42 {
		t.Fatalf("vault id mismatch: %d", vault.VaultID)
	}
	if vault.Address != strings.ToLower(FactoryAddress) {
		t.Fatalf("address mismatch: %s", vault.Address)
	}
	if vault.Token0 != "0x00000000000000000000000000000000000000000000000000000000000000aa" {
		t.Fatalf("token0 mismatch: %s", vault.Token0)
	}
	if vault.Token1 != "0x00000000000000000000000000000000000000000000000000000000000000bb" {
		t.Fatalf("token1 mismatch: %s", vault.Token1)
	}
	if vault.Factory != FactoryAddress {
		t.Fatalf("factory mismatch: %s", vault.Factory)
	}
	if vault.BlockNumber != 36000000 || vault.Timestamp != "1700000000" {
		t.Fatalf("block metadata mismatch: %+v", vault)
	}
}

func TestExtractPositionOpened(t *testing.T) {
	emitter := common.HexToAddress("0x3333333333333333333333333333333333333333")
	block := model.Block{
		Number:    36000001,
		Timestamp: 1700000003,
		Logs:      []model.Log{positionLog(emitter, 7)},
	}

	batch, err := Extract(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Positions) != 1 || len(batch.Vaults) != 0 {
		t.Fatalf("batch size mismatch: %+v", batch)
	}

	position := batch.Positions[0]
	if position.PositionID != 7 {
		t.Fatalf("position id mismatch: %d", position.PositionID)
	}
	if position.Owner != "0x0000000000000000000000002222222222222222222222222222222222222222" {
		t.Fatalf("owner mismatch: %s", position.Owner)
	}
	if position.Amount0 != "0x00000000000000000000000000000000000000000000000000000000000003e8" {
		t.Fatalf("amount0 mismatch: %s", position.Amount0)
	}
	if position.Amount1 != "0x00000000000000000000000000000000000000000000000000000000000007d0" {
		t.Fatalf("amount1 mismatch: %s", position.Amount1)
	}
	if position.Vault != "0x3333333333333333333333333333333333333333" {
		t.Fatalf("vault mismatch: %s", position.Vault)
	}
}

func TestExtractPreservesLogOrder(t *testing.T) {
	factory := common.HexToAddress(FactoryAddress)
	emitter := common.HexToAddress("0x4444444444444444444444444444444444444444")
	block := model.Block{
		Number:    36000002,
		Timestamp: 1700000006,
		Logs: []model.Log{
			vaultLog(factory, 1),
			positionLog(emitter, 10),
			vaultLog(factory, 2),
			positionLog(emitter, 11),
		},
	}

	batch, err := Extract(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Vaults) != 2 || len(batch.Positions) != 2 {
		t.Fatalf("batch size mismatch: %+v", batch)
	}
	if batch.Vaults[0].VaultID != 1 || batch.Vaults[1].VaultID != 2 {
		t.Fatalf("vault order mismatch: %+v", batch.Vaults)
	}
	if batch.Positions[0].PositionID != 10 || batch.Positions[1].PositionID != 11 {
		t.Fatalf("position order mismatch: %+v", batch.Positions)
	}
}

func TestExtractTooFewTopics(t *testing.T) {
	log := vaultLog(common.HexToAddress(FactoryAddress), 1)
	log.Topics = log.Topics[:2]

	_, err := Extract(model.Block{Number: 1, Logs: []model.Log{log}})
	if err == nil {
		t.Fatalf("expected error for missing topics")
	}

	log = positionLog(common.HexToAddress("0x4444444444444444444444444444444444444444"), 1)
	log.Topics = log.Topics[:3]

	_, err = Extract(model.Block{Number: 1, Logs: []model.Log{log}})
	if err == nil {
		t.Fatalf("expected error for missing topics")
	}
}

func TestExtractShortData(t *testing.T) {
	log := vaultLog(common.HexToAddress(FactoryAddress), 1)
	log.Data = log.Data[:31]

	_, err := Extract(model.Block{Number: 1, Logs: []model.Log{log}})
	if err == nil {
		t.Fatalf("expected error for short data")
	}
}

func TestExtractFailsWholeBlock(t *testing.T) {
	factory := common.HexToAddress(FactoryAddress)
	bad := vaultLog(factory, 2)
	bad.Data = nil

	batch, err := Extract(model.Block{
		Number: 1,
		Logs:   []model.Log{vaultLog(factory, 1), bad},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !batch.Empty() {
		t.Fatalf("expected no partial output, got %+v", batch)
	}
}

func TestWordUint64Bounds(t *testing.T) {
	id, err := wordUint64(make([]byte, 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Fatalf("zero word should decode to 0, got %d", id)
	}

	word := make([]byte, 32)
	for i := 24; i < 32; i++ {
		word[i] = 0xff
	}
	id, err = wordUint64(word)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != math.MaxUint64 {
		t.Fatalf("expected MaxUint64, got %d", id)
	}
}

func TestWordUint64RejectsOverflow(t *testing.T) {
	word := make([]byte, 32)
	word[23] = 0x01
	word[31] = 0x2a

	if _, err := wordUint64(word); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestExtractTrailingDataIgnored(t *testing.T) {
	// Only the first data word carries the id; extra words are allowed.
	log := vaultLog(common.HexToAddress(FactoryAddress), 42)
	log.Data = append(log.Data, make([]byte, 32)...)

	batch, err := Extract(model.Block{Number: 1, Logs: []model.Log{log}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.Vaults[0].VaultID != 42 {
		t.Fatalf("vault id mismatch: %d", batch.Vaults[0].VaultID)
	}
}
