package model

import (
	"github.com/ethereum/go-ethereum/common"
)

// Log is a single execution log as delivered by the block source.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Block carries the metadata and ordered logs of one block.
type Block struct {
	Number    uint64
	Timestamp uint64
	Logs      []Log
}
