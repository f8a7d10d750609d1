package model

// VaultEvent is a decoded vault-creation event.
type VaultEvent struct {
	Address     string `json:"address"`
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	VaultID     uint64 `json:"vault_id"`
	BlockNumber uint64 `json:"block_number"`
	Timestamp   string `json:"timestamp"`
	Factory     string `json:"factory"`
}

// PositionEvent is a decoded position-opened event.
type PositionEvent struct {
	PositionID  uint64 `json:"position_id"`
	Owner       string `json:"owner"`
	Amount0     string `json:"amount0"`
	Amount1     string `json:"amount1"`
	BlockNumber uint64 `json:"block_number"`
	Timestamp   string `json:"timestamp"`
	Vault       string `json:"vault"`
}

// EventBatch holds all events extracted from one block, in log order.
type EventBatch struct {
	Vaults    []VaultEvent
	Positions []PositionEvent
}

// Empty reports whether the batch contains no events.
func (b EventBatch) Empty() bool {
	return len(b.Vaults) == 0 && len(b.Positions) == 0
}
