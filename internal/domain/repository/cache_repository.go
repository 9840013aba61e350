package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss lo devuelve Get cuando la clave no existe.
var ErrCacheMiss = errors.New("cache: clave inexistente")

// CacheEntry una entrada de la caché local: el último payload validado y su hora de escritura.
type CacheEntry struct {
	Payload  []byte
	StoredAt time.Time
}

// CacheRepository define el puerto de almacenamiento clave/valor de la caché (DIP).
// Las implementaciones no aplican expiración propia: la frescura se decide al leer.
type CacheRepository interface {
	Get(ctx context.Context, key string) (CacheEntry, error)
	Set(ctx context.Context, key string, entry CacheEntry) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
