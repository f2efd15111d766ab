package store

import (
	"context"
	"sync"

	"chefmate-server/internal/pkg/common"
)

// MemoryStore 內存鍵值存儲，用於測試與未配置 Redis 的環境
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore 創建內存存儲
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Get 獲取鍵值
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}

	// 複製一份，避免呼叫方改動內部狀態
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set 設置鍵值
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

// Close 關閉存儲
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}
