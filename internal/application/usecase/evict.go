package usecase

import (
	"context"
	"strings"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/cache"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// CacheKeys claves de caché afectadas por una invalidación. Un evento de devoluciones sin
// scope afecta a todas las claves returns_user_*; keys es el listado actual del backend.
func CacheKeys(e invalidate.Event, keys []string) []string {
	switch e.Resource {
	case invalidate.Inventory:
		return []string{KeyCatalog, KeyAdminInventories}
	case invalidate.Borrow:
		return []string{KeyAdminBorrows}
	case invalidate.User:
		return []string{KeyUsers}
	case invalidate.Return:
		if e.Scope != "" {
			return []string{ReturnsKey(e.Scope)}
		}
		prefix := cache.Key(keyReturns, "user") + "_"
		var out []string
		for _, k := range keys {
			if strings.HasPrefix(k, prefix) {
				out = append(out, k)
			}
		}
		return out
	default:
		return nil
	}
}

// Evictor devuelve la función de borrado que usa invalidate.Relay para los eventos que
// llegan de otras réplicas.
func Evictor(store *cache.Store, log *logger.Logger) func(ctx context.Context, e invalidate.Event) {
	log = log.Component("evict")
	return func(ctx context.Context, e invalidate.Event) {
		var keys []string
		if e.Resource == invalidate.Return && e.Scope == "" {
			var err error
			if keys, err = store.Keys(ctx); err != nil {
				log.Warn().Err(err).Msg("no se pudieron listar las claves de caché")
				return
			}
		}
		for _, k := range CacheKeys(e, keys) {
			if err := store.Evict(ctx, k); err != nil {
				log.Warn().Err(err).Str("key", k).Msg("no se pudo invalidar la clave")
			}
		}
	}
}
