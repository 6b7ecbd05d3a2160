package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquidityDesk/internal/model"
)

// Store provides Postgres persistence for executions and position
// snapshots.
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

// InsertExecutions appends executed plan records.
func (s *Store) InsertExecutions(ctx context.Context, records []model.ExecutionRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO executions (
				chain_id, owner, kind, tx_hash, status, position_id, operations, submitted_at, confirmed_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		`,
			int64(r.ChainID),
			r.Owner,
			r.Kind,
			r.TxHash,
			r.Status,
			int64(r.PositionID),
			r.Operations,
			r.SubmittedAt,
			nullable(r.ConfirmedAt),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertPositions stores the latest indexed snapshot of an owner's
// positions.
func (s *Store) UpsertPositions(ctx context.Context, chainID uint64, owner string, positions []model.PositionRecord) error {
	if len(positions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range positions {
		batch.Queue(`
			INSERT INTO positions (
				chain_id, owner, position_id, token0, token1, fee, tick_spacing,
				lower_tick, upper_tick, liquidity, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
			ON CONFLICT (chain_id, position_id)
			DO UPDATE SET
				owner = EXCLUDED.owner,
				liquidity = EXCLUDED.liquidity,
				updated_at = now()
		`,
			int64(chainID),
			owner,
			int64(p.ID),
			p.PoolKey.Token0.Hex(),
			p.PoolKey.Token1.Hex(),
			feeString(p),
			int64(p.PoolKey.TickSpacing),
			p.Bounds.Lower,
			p.Bounds.Upper,
			p.Liquidity,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range positions {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func feeString(p model.PositionRecord) string {
	if p.PoolKey.Fee == nil {
		return "0"
	}
	return p.PoolKey.Fee.String()
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
