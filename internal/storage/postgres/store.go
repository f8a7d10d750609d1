package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vaultScope/internal/model"
)

// Schema for the entity tables. Row keys map to the primary key columns,
// so repeated create-row operations collapse to the last value.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS vaults (
	address      TEXT PRIMARY KEY,
	token0       TEXT NOT NULL,
	token1       TEXT NOT NULL,
	vault_id     BIGINT NOT NULL,
	block_number BIGINT NOT NULL,
	ts           TEXT NOT NULL,
	factory      TEXT NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS positions (
	position_id  TEXT PRIMARY KEY,
	owner        TEXT NOT NULL,
	amount0      TEXT NOT NULL,
	amount1      TEXT NOT NULL,
	block_number BIGINT NOT NULL,
	ts           TEXT NOT NULL,
	vault        TEXT NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS indexer_state (
	name                 TEXT PRIMARY KEY,
	last_processed_block BIGINT NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store provides Postgres persistence for entity rows.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the entity tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

// ApplyRows upserts entity rows in batch order, giving last-write-wins
// for duplicate keys.
func (s *Store) ApplyRows(ctx context.Context, rows []model.EntityRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		switch row.Table {
		case model.TableVault:
			queueVault(batch, row)
		case model.TablePosition:
			queuePosition(batch, row)
		default:
			return fmt.Errorf("unknown table: %s", row.Table)
		}
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func queueVault(batch *pgx.Batch, row model.EntityRow) {
	batch.Queue(`
		INSERT INTO vaults (
			address, token0, token1, vault_id, block_number, ts, factory, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (address)
		DO UPDATE SET
			token0 = EXCLUDED.token0,
			token1 = EXCLUDED.token1,
			vault_id = EXCLUDED.vault_id,
			block_number = EXCLUDED.block_number,
			ts = EXCLUDED.ts,
			factory = EXCLUDED.factory,
			updated_at = now()
	`,
		row.Key,
		stringField(row, "token0"),
		stringField(row, "token1"),
		int64Field(row, "vaultId"),
		int64Field(row, "blockNumber"),
		stringField(row, "timestamp"),
		stringField(row, "factory"),
	)
}

func queuePosition(batch *pgx.Batch, row model.EntityRow) {
	batch.Queue(`
		INSERT INTO positions (
			position_id, owner, amount0, amount1, block_number, ts, vault, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (position_id)
		DO UPDATE SET
			owner = EXCLUDED.owner,
			amount0 = EXCLUDED.amount0,
			amount1 = EXCLUDED.amount1,
			block_number = EXCLUDED.block_number,
			ts = EXCLUDED.ts,
			vault = EXCLUDED.vault,
			updated_at = now()
	`,
		row.Key,
		stringField(row, "owner"),
		stringField(row, "amount0"),
		stringField(row, "amount1"),
		int64Field(row, "blockNumber"),
		stringField(row, "timestamp"),
		stringField(row, "vault"),
	)
}

func stringField(row model.EntityRow, name string) string {
	if value, ok := row.Fields[name].(string); ok {
		return value
	}
	return ""
}

func int64Field(row model.EntityRow, name string) int64 {
	switch value := row.Fields[name].(type) {
	case uint64:
		return int64(value)
	case int64:
		return value
	default:
		return 0
	}
}

// LoadState returns last_processed_block for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var block uint64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_block FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return block, true, nil
}

// SaveState upserts last_processed_block for a name.
func (s *Store) SaveState(ctx context.Context, name string, block uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO indexer_state (name, last_processed_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed_block = EXCLUDED.last_processed_block, updated_at = now()
	`, name, block)
	return err
}
