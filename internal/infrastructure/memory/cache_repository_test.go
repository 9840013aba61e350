package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/memory"
)

func TestCacheRepository_CopiaDefensivaDelPayload(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCacheRepository()
	payload := []byte(`[1]`)
	require.NoError(t, repo.Set(ctx, "k", repository.CacheEntry{Payload: payload, StoredAt: time.Now()}))
	payload[1] = '9'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got.Payload)
}

func TestCacheRepository_Concurrente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCacheRepository()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Set(ctx, "k", repository.CacheEntry{Payload: []byte(`[]`), StoredAt: time.Now()})
			_, _ = repo.Get(ctx, "k")
		}()
	}
	wg.Wait()
	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)

	require.NoError(t, repo.Delete(ctx, "k"))
	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}
