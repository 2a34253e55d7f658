// Package pg implementa core.KeyRepository sobre Postgres (pgxpool).
package pg

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS keys (
	kid         TEXT PRIMARY KEY,
	alg         TEXT NOT NULL,
	private_key BYTEA NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_keys_expires_at ON keys (expires_at);
`

// uniqueViolation es el SQLSTATE de Postgres para duplicados de PK.
const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

// Open conecta al DSN dado y asegura el schema.
func Open(ctx context.Context, dsn string, maxConns int) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Insert(ctx context.Context, k *core.KeyRecord) error {
	der := x509.MarshalPKCS1PrivateKey(k.PrivateKey)
	const query = `INSERT INTO keys (kid, alg, private_key, created_at, expires_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.pool.Exec(ctx, query, k.KID, k.Alg, der, k.CreatedAt, k.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return core.ErrDuplicateKey
		}
		return fmt.Errorf("%w: insert: %v", core.ErrStorage, err)
	}
	return nil
}

func (s *Store) ListValid(ctx context.Context, now time.Time) ([]core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at > $1 ORDER BY created_at ASC
	`
	return s.queryRecords(ctx, query, now)
}

func (s *Store) ListExpired(ctx context.Context, now time.Time) ([]core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at <= $1 ORDER BY created_at ASC
	`
	return s.queryRecords(ctx, query, now)
}

func (s *Store) PickValid(ctx context.Context, now time.Time) (*core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at > $1 ORDER BY created_at DESC LIMIT 1
	`
	return s.queryOne(ctx, query, now)
}

func (s *Store) PickExpired(ctx context.Context, now time.Time) (*core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at <= $1 ORDER BY created_at DESC LIMIT 1
	`
	return s.queryOne(ctx, query, now)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) queryRecords(ctx context.Context, query string, cutoff time.Time) ([]core.KeyRecord, error) {
	rows, err := s.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", core.ErrStorage, err)
	}
	defer rows.Close()

	var out []core.KeyRecord
	for rows.Next() {
		k, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", core.ErrStorage, err)
	}
	return out, nil
}

func (s *Store) queryOne(ctx context.Context, query string, cutoff time.Time) (*core.KeyRecord, error) {
	row := s.pool.QueryRow(ctx, query, cutoff)
	k, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	return k, err
}

func scanRecord(row pgx.Row) (*core.KeyRecord, error) {
	var (
		k   core.KeyRecord
		der []byte
	)
	if err := row.Scan(&k.KID, &k.Alg, &der, &k.CreatedAt, &k.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan: %v", core.ErrStorage, err)
	}
	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: private key corrupt: %v", core.ErrStorage, err)
	}
	k.PrivateKey = priv
	k.PublicKey = &priv.PublicKey
	k.CreatedAt = k.CreatedAt.UTC()
	k.ExpiresAt = k.ExpiresAt.UTC()
	return &k, nil
}
