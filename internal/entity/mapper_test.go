package entity

import (
	"reflect"
	"testing"

	"vaultScope/internal/model"
)

func TestToRowsEmptyBatch(t *testing.T) {
	rows := ToRows(model.EventBatch{})
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestToRowsVault(t *testing.T) {
	batch := model.EventBatch{
		Vaults: []model.VaultEvent{{
			Address:     "0x008d4dd934f9811e768f71abce59e193dc407cf8",
			Token0:      "0x00000000000000000000000000000000000000000000000000000000000000aa",
			Token1:      "0x00000000000000000000000000000000000000000000000000000000000000bb",
			VaultID:     42,
			BlockNumber: 36000000,
			Timestamp:   "1700000000",
			Factory:     "0x008D4Dd934f9811E768F71AbCe59E193DC407CF8",
		}},
	}

	rows := ToRows(batch)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.Table != model.TableVault {
		t.Fatalf("table mismatch: %s", row.Table)
	}
	if row.Key != "0x008d4dd934f9811e768f71abce59e193dc407cf8" {
		t.Fatalf("key mismatch: %s", row.Key)
	}

	want := map[string]interface{}{
		"address":     "0x008d4dd934f9811e768f71abce59e193dc407cf8",
		"token0":      "0x00000000000000000000000000000000000000000000000000000000000000aa",
		"token1":      "0x00000000000000000000000000000000000000000000000000000000000000bb",
		"vaultId":     uint64(42),
		"timestamp":   "1700000000",
		"blockNumber": uint64(36000000),
		"factory":     "0x008D4Dd934f9811E768F71AbCe59E193DC407CF8",
	}
	if !reflect.DeepEqual(row.Fields, want) {
		t.Fatalf("fields mismatch: %+v != %+v", row.Fields, want)
	}
}

func TestToRowsPosition(t *testing.T) {
	batch := model.EventBatch{
		Positions: []model.PositionEvent{{
			PositionID:  7,
			Owner:       "0x0000000000000000000000002222222222222222222222222222222222222222",
			Amount0:     "0x00000000000000000000000000000000000000000000000000000000000003e8",
			Amount1:     "0x00000000000000000000000000000000000000000000000000000000000007d0",
			BlockNumber: 36000001,
			Timestamp:   "1700000003",
			Vault:       "0x3333333333333333333333333333333333333333",
		}},
	}

	rows := ToRows(batch)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.Table != model.TablePosition {
		t.Fatalf("table mismatch: %s", row.Table)
	}
	if row.Key != "7" {
		t.Fatalf("key mismatch: %s", row.Key)
	}
	if row.Fields["positionId"] != uint64(7) {
		t.Fatalf("positionId mismatch: %v", row.Fields["positionId"])
	}
	if row.Fields["vault"] != "0x3333333333333333333333333333333333333333" {
		t.Fatalf("vault mismatch: %v", row.Fields["vault"])
	}
}

func TestToRowsDuplicateVaultKeys(t *testing.T) {
	// Two vault events sharing an address both become create ops; the
	// sink's upsert keeps the last one.
	batch := model.EventBatch{
		Vaults: []model.VaultEvent{
			{Address: "0xaaaa", VaultID: 1, Timestamp: "1"},
			{Address: "0xaaaa", VaultID: 2, Timestamp: "2"},
		},
	}

	rows := ToRows(batch)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Key != rows[1].Key {
		t.Fatalf("keys should match: %s != %s", rows[0].Key, rows[1].Key)
	}
	if rows[1].Fields["vaultId"] != uint64(2) {
		t.Fatalf("last row should carry second event: %+v", rows[1].Fields)
	}
}

func TestToRowsPreservesOrder(t *testing.T) {
	batch := model.EventBatch{
		Vaults: []model.VaultEvent{
			{Address: "0x01", VaultID: 1},
			{Address: "0x02", VaultID: 2},
		},
		Positions: []model.PositionEvent{
			{PositionID: 10},
			{PositionID: 11},
		},
	}

	rows := ToRows(batch)
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.Table+":"+row.Key)
	}

	want := []string{"Vault:0x01", "Vault:0x02", "Position:10", "Position:11"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("order mismatch: %v != %v", keys, want)
	}
}
