package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
    key       TEXT PRIMARY KEY,
    payload   BYTEA NOT NULL,
    stored_at BIGINT NOT NULL
)`

// CacheRepository implementa repository.CacheRepository sobre PostgreSQL, compartida entre
// réplicas del BFF.
type CacheRepository struct {
	pool *pgxpool.Pool
}

// NewCacheRepository crea el repositorio y asegura la tabla cache_entries.
func NewCacheRepository(ctx context.Context, pool *pgxpool.Pool) (*CacheRepository, error) {
	if _, err := pool.Exec(ctx, cacheSchema); err != nil {
		return nil, fmt.Errorf("crear tabla cache_entries: %w", err)
	}
	return &CacheRepository{pool: pool}, nil
}

func (r *CacheRepository) Get(ctx context.Context, key string) (repository.CacheEntry, error) {
	var (
		payload  []byte
		storedAt int64
	)
	err := r.pool.QueryRow(ctx,
		`SELECT payload, stored_at FROM cache_entries WHERE key = $1`, key,
	).Scan(&payload, &storedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.CacheEntry{}, repository.ErrCacheMiss
	}
	if err != nil {
		return repository.CacheEntry{}, fmt.Errorf("leer %s: %w", key, err)
	}
	return repository.CacheEntry{Payload: payload, StoredAt: time.UnixMilli(storedAt)}, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, entry repository.CacheEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cache_entries (key, payload, stored_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, stored_at = EXCLUDED.stored_at`,
		key, entry.Payload, entry.StoredAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cache_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listar claves: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("listar claves: %w", err)
	}
	return keys, nil
}
