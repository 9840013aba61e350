package backend_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/backend"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/config"
)

func TestOpen_MemoryYSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "cache.db")}}

	for _, driver := range []string{config.CacheMemory, config.CacheSQLite} {
		t.Run(driver, func(t *testing.T) {
			repo, closeFn, err := backend.Open(ctx, cfg, driver)
			require.NoError(t, err)
			defer closeFn()

			entry := repository.CacheEntry{Payload: []byte(`[]`), StoredAt: time.UnixMilli(1714550400000)}
			require.NoError(t, repo.Set(ctx, "users", entry))
			got, err := repo.Get(ctx, "users")
			require.NoError(t, err)
			assert.Equal(t, entry.Payload, got.Payload)
		})
	}
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, _, err := backend.Open(context.Background(), &config.Config{}, "mongo")
	assert.ErrorContains(t, err, "mongo")
}
