package model

// LogRecord is the JSONL representation of a raw chain log, as produced
// by an upstream log fetcher and consumed by the offline extract command.
type LogRecord struct {
	BlockNumber uint64   `json:"block_number"`
	TxHash      string   `json:"tx_hash"`
	LogIndex    uint64   `json:"log_index"`
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	Removed     bool     `json:"removed"`
	Timestamp   uint64   `json:"timestamp"`
}
