package redis_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/redis"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/config"
)

// Requiere un Redis real: TEST_REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/redis/
func openRepo(t *testing.T) *redis.CacheRepository {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rdb, err := redis.NewClient(ctx, config.RedisConfig{Addr: addr})
	if err != nil {
		t.Skipf("redis no disponible: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.NewCacheRepository(rdb)
}

// uniqueKey evita choques con otras ejecuciones sobre el mismo servidor.
func uniqueKey(t *testing.T, repo *redis.CacheRepository, name string) string {
	t.Helper()
	key := "test_" + uuid.NewString() + "_" + name
	t.Cleanup(func() { _ = repo.Delete(context.Background(), key) })
	return key
}

func ownKeys(t *testing.T, repo *redis.CacheRepository, prefix string) []string {
	t.Helper()
	all, err := repo.Keys(context.Background())
	require.NoError(t, err)
	var out []string
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func TestCacheRepository_SobrescribeSinCrecer(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	key := uniqueKey(t, repo, "users")
	at := time.UnixMilli(1714550400123)

	for i := 0; i < 5; i++ {
		entry := repository.CacheEntry{Payload: []byte(`[` + string(rune('0'+i)) + `]`), StoredAt: at.Add(time.Duration(i) * time.Second)}
		require.NoError(t, repo.Set(ctx, key, entry))
	}

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[4]`), got.Payload)
	assert.Equal(t, at.Add(4*time.Second).UnixMilli(), got.StoredAt.UnixMilli())
	assert.Equal(t, []string{key}, ownKeys(t, repo, key), "una sola clave por recurso")
}

func TestCacheRepository_MissYDelete(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	key := uniqueKey(t, repo, "k")

	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, key, repository.CacheEntry{Payload: []byte(`[]`), StoredAt: time.Now()}))
	require.NoError(t, repo.Delete(ctx, key))
	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
	assert.Empty(t, ownKeys(t, repo, key))
}
