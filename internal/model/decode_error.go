package model

// DecodeError records an extraction failure for one block.
type DecodeError struct {
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash,omitempty"`
	LogIndex    uint64 `json:"log_index,omitempty"`
	Address     string `json:"address,omitempty"`
	Topic0      string `json:"topic0,omitempty"`
	Error       string `json:"error"`
}
