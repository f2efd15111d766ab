package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 提示詞回應快取
// 相同提示詞在 TTL 內直接重用上游模型的回應，減少重複呼叫
type Manager struct {
	config    *config.Config
	mu        sync.Mutex
	store     map[string]entry
	stats     stats
	done      chan struct{}
	closeOnce sync.Once
}

// entry 快取條目
type entry struct {
	value      string
	expiresAt  time.Time
	createdAt  time.Time
	lastAccess time.Time
}

// stats 快取統計
type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建快取管理器，停用時返回 nil
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		store:  make(map[string]entry),
		done:   make(chan struct{}),
	}

	// 背景清理過期條目
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 以提示詞查詢快取回應
func (m *Manager) Get(ctx context.Context, prompt string) (string, bool) {
	if m == nil {
		return "", false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := hashPrompt(prompt)
	e, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("recipe")
		return "", false
	}

	if time.Now().After(e.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogInfo("快取已過期", zap.String("鍵", key))
		return "", false
	}

	e.lastAccess = time.Now()
	m.store[key] = e
	m.stats.hits++
	common.LogCacheHit("recipe")
	return e.value, true
}

// Set 寫入快取回應
func (m *Manager) Set(ctx context.Context, prompt, value string) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 容量滿時先清過期，仍滿則淘汰最久未使用的條目
	if len(m.store) >= m.config.Cache.MaxSize {
		m.cleanupLocked()
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictOldestLocked()
		}
		if len(m.store) >= m.config.Cache.MaxSize {
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[hashPrompt(prompt)] = entry{
		value:      value,
		expiresAt:  now.Add(m.config.Cache.TTL),
		createdAt:  now,
		lastAccess: now,
	}
	return nil
}

// hashPrompt 計算提示詞的 SHA-256 快取鍵
func hashPrompt(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:])
}

// startCleanup 啟動清理過期快取的協程，Close 時結束
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanupLocked()
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// cleanupLocked 清理過期的快取，呼叫方需持有鎖
func (m *Manager) cleanupLocked() {
	now := time.Now()
	count := 0
	for key, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}
	if count > 0 {
		common.LogInfo("快取清理執行", zap.Int("清理數量", count))
	}
}

// evictOldestLocked 淘汰最久未訪問的條目，呼叫方需持有鎖
func (m *Manager) evictOldestLocked() {
	var oldestKey string
	var oldestAccess time.Time

	for key, e := range m.store {
		if oldestKey == "" || e.lastAccess.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = e.lastAccess
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogInfo("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// Stats 獲取快取統計信息
func (m *Manager) Stats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"enabled":   true,
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉快取管理器並停止背景清理協程
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.closeOnce.Do(func() { close(m.done) })

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]entry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
