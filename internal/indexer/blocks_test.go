package indexer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestGroupByBlock(t *testing.T) {
	topic := common.HexToHash("0xaaaa")
	logs := []types.Log{
		{BlockNumber: 100, Topics: []common.Hash{topic}, Index: 0},
		{BlockNumber: 100, Topics: []common.Hash{topic}, Index: 1},
		{BlockNumber: 102, Topics: []common.Hash{topic}, Index: 0},
	}

	blocks := GroupByBlock(logs)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Number != 100 || len(blocks[0].Logs) != 2 {
		t.Fatalf("first block mismatch: %+v", blocks[0])
	}
	if blocks[1].Number != 102 || len(blocks[1].Logs) != 1 {
		t.Fatalf("second block mismatch: %+v", blocks[1])
	}
}

func TestGroupByBlockDropsRemoved(t *testing.T) {
	logs := []types.Log{
		{BlockNumber: 100, Removed: true},
		{BlockNumber: 100},
	}

	blocks := GroupByBlock(logs)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Logs) != 1 {
		t.Fatalf("removed log should be dropped: %+v", blocks[0])
	}
}

func TestGroupByBlockEmpty(t *testing.T) {
	if blocks := GroupByBlock(nil); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}
