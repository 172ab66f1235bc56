package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"feeScope/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS fee_quotes (
	para_block_number BIGINT      NOT NULL,
	para_block_hash   TEXT        NOT NULL DEFAULT '',
	pool_type         TEXT        NOT NULL,
	pool_address      TEXT        NOT NULL,
	asset_in          TEXT        NOT NULL,
	asset_out         TEXT        NOT NULL,
	asset_fee         TEXT        NOT NULL DEFAULT '',
	protocol_fee      TEXT        NOT NULL DEFAULT '',
	min_fee           TEXT        NOT NULL DEFAULT '',
	max_fee           TEXT        NOT NULL DEFAULT '',
	fee               TEXT        NOT NULL DEFAULT '',
	exchange_fee      TEXT        NOT NULL DEFAULT '',
	repay_fee         TEXT        NOT NULL DEFAULT '',
	computed_at       TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (para_block_number, pool_address, asset_in, asset_out)
);
CREATE TABLE IF NOT EXISTS feescope_state (
	name              TEXT        PRIMARY KEY,
	last_para_block   BIGINT      NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store provides Postgres persistence for fee quotes.
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

// EnsureSchema creates the quote and state tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpsertFeeQuotes inserts or updates fee quotes. A quote is keyed by block,
// pool and direction.
func (s *Store) UpsertFeeQuotes(ctx context.Context, quotes []storage.FeeQuote) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(`
			INSERT INTO fee_quotes (
				para_block_number, para_block_hash, pool_type, pool_address, asset_in, asset_out,
				asset_fee, protocol_fee, min_fee, max_fee, fee, exchange_fee, repay_fee,
				computed_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,now(),now())
			ON CONFLICT (para_block_number, pool_address, asset_in, asset_out)
			DO UPDATE SET
				para_block_hash = EXCLUDED.para_block_hash,
				pool_type = EXCLUDED.pool_type,
				asset_fee = EXCLUDED.asset_fee,
				protocol_fee = EXCLUDED.protocol_fee,
				min_fee = EXCLUDED.min_fee,
				max_fee = EXCLUDED.max_fee,
				fee = EXCLUDED.fee,
				exchange_fee = EXCLUDED.exchange_fee,
				repay_fee = EXCLUDED.repay_fee,
				computed_at = EXCLUDED.computed_at,
				updated_at = now()
		`,
			int64(q.ParaBlockNumber),
			q.ParaBlockHash,
			q.PoolType,
			q.PoolAddress,
			q.AssetIn,
			q.AssetOut,
			q.AssetFee,
			q.ProtocolFee,
			q.Min,
			q.Max,
			q.Fee,
			q.ExchangeFee,
			q.RepayFee,
			q.ComputedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutQuoteBatch lets the store serve as a storage.Storage sink.
func (s *Store) PutQuoteBatch(quotes []storage.FeeQuote) error {
	return s.UpsertFeeQuotes(context.Background(), quotes)
}

// LoadState returns the last quoted para block for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var block int64
	row := s.pool.QueryRow(ctx, `SELECT last_para_block FROM feescope_state WHERE name=$1`, name)
	if err := row.Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(block), true, nil
}

// SaveState upserts the last quoted para block for a name.
func (s *Store) SaveState(ctx context.Context, name string, block uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO feescope_state (name, last_para_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_para_block = EXCLUDED.last_para_block, updated_at = now()
	`, name, int64(block))
	return err
}
