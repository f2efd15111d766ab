package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"
)

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestGetReturnsStoredValue(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	defer m.Close()
	ctx := context.Background()

	if _, ok := m.Get(ctx, "prompt A"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	if err := m.Set(ctx, "prompt A", "recipe A"); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, ok := m.Get(ctx, "prompt A")
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if val != "recipe A" {
		t.Fatalf("unexpected value %q", val)
	}

	// 不同提示詞不得命中
	if _, ok := m.Get(ctx, "prompt B"); ok {
		t.Fatalf("different prompt should miss")
	}
}

func TestGetExpiredEntryMisses(t *testing.T) {
	m := NewManager(testConfig(10, 10*time.Millisecond))
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "prompt", "recipe"); err != nil {
		t.Fatalf("set: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok := m.Get(ctx, "prompt"); ok {
		t.Fatalf("expired entry should miss")
	}
}

func TestSetEvictsLeastRecentlyUsedAtCapacity(t *testing.T) {
	m := NewManager(testConfig(2, time.Hour))
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "first", "v1"); err != nil {
		t.Fatalf("set first: %v", err)
	}
	// 確保 lastAccess 有先後之分
	time.Sleep(5 * time.Millisecond)
	if err := m.Set(ctx, "second", "v2"); err != nil {
		t.Fatalf("set second: %v", err)
	}

	// 訪問 first 之後，second 成為最久未使用
	time.Sleep(5 * time.Millisecond)
	if _, ok := m.Get(ctx, "first"); !ok {
		t.Fatalf("first should still be cached")
	}

	if err := m.Set(ctx, "third", "v3"); err != nil {
		t.Fatalf("set third: %v", err)
	}

	if _, ok := m.Get(ctx, "second"); ok {
		t.Fatalf("second should have been evicted")
	}
	if _, ok := m.Get(ctx, "first"); !ok {
		t.Fatalf("first should survive eviction")
	}
	if _, ok := m.Get(ctx, "third"); !ok {
		t.Fatalf("third should be cached")
	}
}

func TestStatsCountsHitsAndMisses(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	defer m.Close()
	ctx := context.Background()

	m.Get(ctx, "absent")
	if err := m.Set(ctx, "present", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	m.Get(ctx, "present")
	m.Get(ctx, "present")

	stats := m.Stats()
	if stats["hits"].(int64) != 2 {
		t.Fatalf("expected 2 hits, got %v", stats["hits"])
	}
	if stats["misses"].(int64) != 1 {
		t.Fatalf("expected 1 miss, got %v", stats["misses"])
	}
	if stats["size"].(int) != 1 {
		t.Fatalf("expected size 1, got %v", stats["size"])
	}
}

func TestDisabledManagerIsNilAndSafe(t *testing.T) {
	cfg := testConfig(10, time.Hour)
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	if m != nil {
		t.Fatalf("disabled cache should return nil manager")
	}

	// nil 管理器的所有方法都必須可安全呼叫
	ctx := context.Background()
	if _, ok := m.Get(ctx, "prompt"); ok {
		t.Fatalf("nil manager should always miss")
	}
	if err := m.Set(ctx, "prompt", "v"); err != nil {
		t.Fatalf("nil manager set: %v", err)
	}
	if enabled := m.Stats()["enabled"].(bool); enabled {
		t.Fatalf("nil manager stats should report disabled")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("nil manager close: %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestCloseStopsCleanupWorker(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Close 後清理協程的結束信號必須已發出
	select {
	case <-m.done:
	default:
		t.Fatalf("cleanup worker not signalled to stop")
	}
}

func TestSetFullWithFreshEntries(t *testing.T) {
	m := NewManager(testConfig(1, time.Hour))
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "only", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// 容量 1 時寫入新條目必須淘汰舊條目而不是報滿
	if err := m.Set(ctx, "next", "v"); err != nil {
		if !errors.Is(err, common.ErrCacheFull) {
			t.Fatalf("unexpected error: %v", err)
		}
		t.Fatalf("expected LRU eviction, got ErrCacheFull")
	}
	if _, ok := m.Get(ctx, "next"); !ok {
		t.Fatalf("newest entry should be cached")
	}
}

func TestEvictionKeepsCapacityBound(t *testing.T) {
	m := NewManager(testConfig(5, time.Hour))
	defer m.Close()
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if err := m.Set(ctx, fmt.Sprintf("prompt-%d", i), "v"); err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}

	if size := m.Stats()["size"].(int); size > 5 {
		t.Fatalf("cache exceeded capacity: %d", size)
	}
}
