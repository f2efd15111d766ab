package service

import (
	"context"
	"testing"
	"time"

	"chefmate-server/internal/core/ai/cache"
	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"
)

// countingClient 記錄上游呼叫次數並返回固定回應
type countingClient struct {
	calls  int
	result string
	err    error
}

func (c *countingClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.result, nil
}

func (c *countingClient) Close() error { return nil }

func testConfig(cacheEnabled bool) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         cacheEnabled,
			MaxSize:         10,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
	}
}

func newTestService(client *countingClient, cfg *config.Config) (*Service, *cache.Manager) {
	manager := cache.NewManager(cfg)
	return &Service{
		config:       cfg,
		client:       client,
		cacheManager: manager,
	}, manager
}

func TestProcessRequestCachesResponse(t *testing.T) {
	client := &countingClient{result: "a recipe"}
	svc, manager := newTestService(client, testConfig(true))
	defer manager.Close()
	ctx := context.Background()

	first, err := svc.ProcessRequest(ctx, "chicken prompt")
	if err != nil {
		t.Fatalf("first request: %v", err)
	}

	// 相同提示詞第二次必須命中快取，不得再呼叫上游
	second, err := svc.ProcessRequest(ctx, "chicken prompt")
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if first != second {
		t.Fatalf("cached response mismatch: %q vs %q", first, second)
	}
	if client.calls != 1 {
		t.Fatalf("provider called %d times, expected 1", client.calls)
	}
}

func TestProcessRequestNormalizesWhitespaceForCacheKey(t *testing.T) {
	client := &countingClient{result: "a recipe"}
	svc, manager := newTestService(client, testConfig(true))
	defer manager.Close()
	ctx := context.Background()

	if _, err := svc.ProcessRequest(ctx, "chicken  and \n rice"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	// 僅空白不同的提示詞視為同一鍵
	if _, err := svc.ProcessRequest(ctx, "chicken and rice"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("provider called %d times, expected 1", client.calls)
	}
}

func TestProcessRequestFailureIsNotCached(t *testing.T) {
	client := &countingClient{err: common.NewGenerationError("upstream down", nil)}
	svc, manager := newTestService(client, testConfig(true))
	defer manager.Close()
	ctx := context.Background()

	if _, err := svc.ProcessRequest(ctx, "prompt"); err == nil {
		t.Fatalf("expected error from provider")
	}
	if _, err := svc.ProcessRequest(ctx, "prompt"); err == nil {
		t.Fatalf("expected error from provider")
	}
	// 失敗回應不得進快取，每次都要重試上游
	if client.calls != 2 {
		t.Fatalf("provider called %d times, expected 2", client.calls)
	}
}

func TestProcessRequestWithCacheDisabled(t *testing.T) {
	client := &countingClient{result: "a recipe"}
	svc, manager := newTestService(client, testConfig(false))
	if manager != nil {
		t.Fatalf("disabled cache should yield nil manager")
	}
	ctx := context.Background()

	if _, err := svc.ProcessRequest(ctx, "prompt"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := svc.ProcessRequest(ctx, "prompt"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	// 快取停用時每個請求都走上游
	if client.calls != 2 {
		t.Fatalf("provider called %d times, expected 2", client.calls)
	}
}
