// Package backend abre el backend de caché configurado (memory, sqlite, postgres o redis)
// detrás del puerto repository.CacheRepository. Lo comparten el BFF y el CLI.
package backend

import (
	"context"
	"fmt"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/memory"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/postgres"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/redis"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/sqlite"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/config"
)

// Open abre el backend driver. La función devuelta libera conexiones y archivos.
func Open(ctx context.Context, cfg *config.Config, driver string) (repository.CacheRepository, func(), error) {
	switch driver {
	case config.CacheMemory, "":
		return memory.NewCacheRepository(), func() {}, nil
	case config.CacheSQLite:
		repo, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("caché sqlite: %w", err)
		}
		return repo, func() { _ = repo.Close() }, nil
	case config.CachePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("caché postgres: %w", err)
		}
		repo, err := postgres.NewCacheRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("caché postgres: %w", err)
		}
		return repo, pool.Close, nil
	case config.CacheRedis:
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("caché redis: %w", err)
		}
		return redis.NewCacheRepository(rdb), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("driver de caché desconocido %q", driver)
	}
}
