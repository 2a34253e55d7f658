// Package sqlite implementa core.KeyRepository sobre SQLite
// (database/sql + mattn/go-sqlite3). Una sola tabla `keys`, con la
// clave privada como blob PKCS#1 DER; la pública se reconstruye al leer.
package sqlite

import (
	"context"
	"crypto/x509"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS keys (
	kid         TEXT PRIMARY KEY,
	alg         TEXT NOT NULL,
	private_key BLOB NOT NULL,
	created_at  INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_keys_expires_at ON keys(expires_at);
`

type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y prepara el schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	// Pragmas por conexión para concurrencia razonable.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Insert(ctx context.Context, k *core.KeyRecord) error {
	der := x509.MarshalPKCS1PrivateKey(k.PrivateKey)
	const query = `INSERT INTO keys (kid, alg, private_key, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, k.KID, k.Alg, der, k.CreatedAt.Unix(), k.ExpiresAt.Unix())
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
			return core.ErrDuplicateKey
		}
		return fmt.Errorf("%w: insert: %v", core.ErrStorage, err)
	}
	return nil
}

func (s *Store) ListValid(ctx context.Context, now time.Time) ([]core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at > ? ORDER BY created_at ASC
	`
	return s.queryRecords(ctx, query, now.Unix())
}

func (s *Store) ListExpired(ctx context.Context, now time.Time) ([]core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at <= ? ORDER BY created_at ASC
	`
	return s.queryRecords(ctx, query, now.Unix())
}

func (s *Store) PickValid(ctx context.Context, now time.Time) (*core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at > ? ORDER BY created_at DESC LIMIT 1
	`
	return s.queryOne(ctx, query, now.Unix())
}

func (s *Store) PickExpired(ctx context.Context, now time.Time) (*core.KeyRecord, error) {
	const query = `
		SELECT kid, alg, private_key, created_at, expires_at
		FROM keys WHERE expires_at <= ? ORDER BY created_at DESC LIMIT 1
	`
	return s.queryOne(ctx, query, now.Unix())
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) queryRecords(ctx context.Context, query string, cutoff int64) ([]core.KeyRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, cutoff)
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

func (s *Store) queryOne(ctx context.Context, query string, cutoff int64) (*core.KeyRecord, error) {
	row := s.db.QueryRowContext(ctx, query, cutoff)
	k, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	return k, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*core.KeyRecord, error) {
	var (
		k       core.KeyRecord
		der     []byte
		created int64
		expires int64
	)
	if err := row.Scan(&k.KID, &k.Alg, &der, &created, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	k.CreatedAt = time.Unix(created, 0).UTC()
	k.ExpiresAt = time.Unix(expires, 0).UTC()
	return &k, nil
}
