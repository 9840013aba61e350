package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
)

//go:embed schema.sql
var schemaSQL string

// CacheRepository caché persistente en un archivo SQLite (por defecto en el CLI, para que
// dos invocaciones seguidas compartan la caché).
type CacheRepository struct {
	db *sql.DB
}

// Open crea o abre la base en path y aplica el esquema. Es idempotente.
// path ":memory:" sirve para tests.
func Open(path string) (*CacheRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("conectar sqlite: %w", err)
	}
	// SQLite admite un solo escritor a la vez.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("ejecutar %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &CacheRepository{db: db}, nil
}

// Close cierra la conexión.
func (r *CacheRepository) Close() error {
	return r.db.Close()
}

func (r *CacheRepository) Get(ctx context.Context, key string) (repository.CacheEntry, error) {
	var (
		payload  []byte
		storedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, stored_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.CacheEntry{}, repository.ErrCacheMiss
	}
	if err != nil {
		return repository.CacheEntry{}, fmt.Errorf("leer %s: %w", key, err)
	}
	return repository.CacheEntry{Payload: payload, StoredAt: time.UnixMilli(storedAt)}, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, entry repository.CacheEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, payload, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at`,
		key, entry.Payload, entry.StoredAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listar claves: %w", err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
