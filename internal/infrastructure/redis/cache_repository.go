package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/repository"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/config"
)

// keyspace prefijo de las claves propias en Redis (Keys solo enumera este espacio).
const keyspace = "smi:cache:"

const (
	fieldPayload  = "payload"
	fieldStoredAt = "stored_at"
)

// NewClient crea un cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// CacheRepository guarda cada entrada como un hash {payload, stored_at}. No se usa TTL de
// Redis: la vigencia la decide el Store al leer.
type CacheRepository struct {
	rdb goredis.UniversalClient
}

// NewCacheRepository crea el repositorio sobre un cliente existente.
func NewCacheRepository(rdb goredis.UniversalClient) *CacheRepository {
	return &CacheRepository{rdb: rdb}
}

func (r *CacheRepository) Get(ctx context.Context, key string) (repository.CacheEntry, error) {
	vals, err := r.rdb.HMGet(ctx, keyspace+key, fieldPayload, fieldStoredAt).Result()
	if err != nil {
		return repository.CacheEntry{}, fmt.Errorf("hmget %s: %w", key, err)
	}
	payload, ok1 := vals[0].(string)
	stamp, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return repository.CacheEntry{}, repository.ErrCacheMiss
	}
	ms, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return repository.CacheEntry{}, fmt.Errorf("stored_at corrupto en %s: %w", key, err)
	}
	return repository.CacheEntry{Payload: []byte(payload), StoredAt: time.UnixMilli(ms)}, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, entry repository.CacheEntry) error {
	err := r.rdb.HSet(ctx, keyspace+key,
		fieldPayload, entry.Payload,
		fieldStoredAt, entry.StoredAt.UnixMilli(),
	).Err()
	if err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, keyspace+key).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.rdb.Scan(ctx, 0, keyspace+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(keyspace):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return keys, nil
}
