// Package cache implementa la caché local de colecciones validadas: una entrada por clave con
// el payload y la hora de escritura. La expiración es solo de lectura (IsFresh); las entradas
// vencidas se ignoran pero no se purgan.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// Clock permite fijar la hora en tests.
type Clock func() time.Time

// Store caché de payloads sobre un CacheRepository.
type Store struct {
	backend repository.CacheRepository
	now     Clock
	prefix  string
	log     *logger.Logger
}

// Option configura un Store.
type Option func(*Store)

// WithClock reemplaza el reloj (por defecto time.Now).
func WithClock(c Clock) Option { return func(s *Store) { s.now = c } }

// WithPrefix antepone prefix a todas las claves (aislamiento entre entornos).
func WithPrefix(prefix string) Option { return func(s *Store) { s.prefix = prefix } }

// NewStore crea un Store sobre backend.
func NewStore(backend repository.CacheRepository, log *logger.Logger, opts ...Option) *Store {
	s := &Store{backend: backend, now: time.Now, log: log.Component("cache")}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Entry entrada leída: payload, hora de escritura y antigüedad según el reloj del Store.
type Entry struct {
	Payload  []byte
	StoredAt time.Time
	Age      time.Duration
}

// Read devuelve el payload y su antigüedad. Un fallo del backend o una entrada corrupta se
// registran como error de caché y se reportan como ausencia: la caché nunca es fatal.
func (s *Store) Read(ctx context.Context, key string) ([]byte, time.Duration, bool) {
	e, ok := s.Lookup(ctx, key)
	if !ok {
		return nil, 0, false
	}
	return e.Payload, e.Age, true
}

// Lookup como Read, pero también devuelve la hora de escritura.
func (s *Store) Lookup(ctx context.Context, key string) (Entry, bool) {
	e, err := s.backend.Get(ctx, s.prefix+key)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.log.Warn().Err(domain.NewCache(domain.CodeCacheBackend, err)).Str("key", key).Msg("lectura de caché fallida")
		}
		return Entry{}, false
	}
	if len(e.Payload) == 0 || e.StoredAt.IsZero() {
		s.log.Warn().Err(domain.NewCache(domain.CodeCacheCorrupt, nil)).Str("key", key).Msg("entrada de caché incompleta")
		return Entry{}, false
	}
	age := s.now().Sub(e.StoredAt)
	if age < 0 {
		age = 0
	}
	return Entry{Payload: e.Payload, StoredAt: e.StoredAt, Age: age}, true
}

// Write sobrescribe la entrada de key con payload y la hora actual.
func (s *Store) Write(ctx context.Context, key string, payload []byte) error {
	entry := repository.CacheEntry{Payload: payload, StoredAt: s.now().Truncate(time.Millisecond)}
	if err := s.backend.Set(ctx, s.prefix+key, entry); err != nil {
		return domain.NewCache(domain.CodeCacheBackend, err)
	}
	return nil
}

// Evict elimina la entrada de key. Solo lo usan invalidaciones llegadas de otras réplicas.
func (s *Store) Evict(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.prefix+key); err != nil && !errors.Is(err, repository.ErrCacheMiss) {
		return domain.NewCache(domain.CodeCacheBackend, err)
	}
	return nil
}

// Keys lista las claves del Store (sin prefijo).
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	all, err := s.backend.Keys(ctx)
	if err != nil {
		return nil, domain.NewCache(domain.CodeCacheBackend, err)
	}
	out := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, s.prefix) {
			out = append(out, strings.TrimPrefix(k, s.prefix))
		}
	}
	return out, nil
}

// IsFresh indica si una entrada con esa antigüedad sigue vigente (comparación estricta).
func IsFresh(age, ttl time.Duration) bool {
	return age < ttl
}

// Key construye la clave estable de un recurso, opcionalmente acotada (p. ej. por usuario):
// Key("admin_borrows") = "admin_borrows", Key("returns", "user", id) = "returns_user_<id>".
func Key(resource string, scope ...string) string {
	if len(scope) == 0 {
		return resource
	}
	return resource + "_" + strings.Join(scope, "_")
}
