package store

import (
	"context"

	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 鍵值存儲
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 創建 Redis 存儲並測試連接
func NewRedisStore(cfg *config.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, common.NewStoreError("failed to connect to redis", err)
	}

	common.LogInfo("Redis 存儲已連接", zap.String("addr", cfg.Addr))

	return &RedisStore{client: client}, nil
}

// Get 獲取鍵值
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrNotFound
		}
		return nil, common.NewStoreError("failed to get key "+key, err)
	}
	return data, nil
}

// Set 設置鍵值。最後寫入者獲勝，不做版本檢查。
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return common.NewStoreError("failed to set key "+key, err)
	}
	return nil
}

// Close 關閉連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
