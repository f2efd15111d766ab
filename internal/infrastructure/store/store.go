package store

import (
	"context"

	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"
)

// 鍵值命名空間前綴
const (
	ProfileKeyPrefix = "profile_"
	ChatKeyPrefix    = "chat_"
)

// Store 通用鍵值存儲介面
// 值以 JSON 位元組存取，結構在序列化往返後必須保持不變。
// 不存在的鍵返回 common.ErrNotFound，其他 I/O 失敗一律包成 StoreError，
// 由呼叫方區分「不存在」與「存取失敗」。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// NewStore 依設定建立鍵值存儲
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		return NewRedisStore(&cfg.Store)
	default:
		return NewMemoryStore(), nil
	}
}

// GetJSON 讀取鍵值並解析為結構體
func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		return common.NewStoreError("failed to decode stored value", err)
	}
	return nil
}

// SetJSON 將結構體序列化後寫入鍵值
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := common.ToJSON(v)
	if err != nil {
		return common.NewStoreError("failed to encode value", err)
	}
	return s.Set(ctx, key, []byte(data))
}
