package entity

import (
	"strconv"

	"vaultScope/internal/model"
)

// ToRows reshapes an extracted event batch into create-row operations.
// Vault rows are keyed by vault address, Position rows by decimal
// position id. Row order follows event order within each table.
func ToRows(batch model.EventBatch) []model.EntityRow {
	tables := NewTables()

	for _, vault := range batch.Vaults {
		tables.CreateRow(model.TableVault, vault.Address).
			Set("address", vault.Address).
			Set("token0", vault.Token0).
			Set("token1", vault.Token1).
			Set("vaultId", vault.VaultID).
			Set("timestamp", vault.Timestamp).
			Set("blockNumber", vault.BlockNumber).
			Set("factory", vault.Factory)
	}

	for _, position := range batch.Positions {
		tables.CreateRow(model.TablePosition, strconv.FormatUint(position.PositionID, 10)).
			Set("positionId", position.PositionID).
			Set("owner", position.Owner).
			Set("amount0", position.Amount0).
			Set("amount1", position.Amount1).
			Set("timestamp", position.Timestamp).
			Set("blockNumber", position.BlockNumber).
			Set("vault", position.Vault)
	}

	return tables.Rows()
}
