package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
)

// CacheRepository implementación en memoria de repository.CacheRepository (BFF de una sola
// réplica y tests). Segura para uso concurrente.
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]repository.CacheEntry
}

// NewCacheRepository crea un repositorio vacío.
func NewCacheRepository() *CacheRepository {
	return &CacheRepository{entries: make(map[string]repository.CacheEntry)}
}

func (r *CacheRepository) Get(_ context.Context, key string) (repository.CacheEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	if !ok {
		return repository.CacheEntry{}, repository.ErrCacheMiss
	}
	e.Payload = append([]byte(nil), e.Payload...)
	return e, nil
}

func (r *CacheRepository) Set(_ context.Context, key string, entry repository.CacheEntry) error {
	entry.Payload = append([]byte(nil), entry.Payload...)
	r.mu.Lock()
	r.entries[key] = entry
	r.mu.Unlock()
	return nil
}

func (r *CacheRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

func (r *CacheRepository) Keys(_ context.Context) ([]string, error) {
	r.mu.RLock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}
