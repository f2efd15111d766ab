package service

import (
	"context"
	"strings"

	"chefmate-server/internal/core/ai/cache"
	"chefmate-server/internal/core/ai/openai"
	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"

	"go.uber.org/zap"
)

// textGenerator 上游模型客戶端
type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Service AI 服務：提示詞進、回應文字出，中間夾一層回應快取
type Service struct {
	config       *config.Config
	client       textGenerator
	cacheManager *cache.Manager
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, cacheManager *cache.Manager) *Service {
	return &Service{
		config:       cfg,
		client:       openai.NewClient(cfg),
		cacheManager: cacheManager,
	}
}

// ProcessRequest 統一對外方法
// 相同提示詞（忽略空白差異）在快取有效期內直接返回快取結果。
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (string, error) {
	// 統一 prompt 空白，確保快取鍵一致
	cacheKey := strings.Join(strings.Fields(prompt), " ")

	if val, ok := s.cacheManager.Get(ctx, cacheKey); ok {
		return val, nil
	}

	content, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := s.cacheManager.Set(ctx, cacheKey, content); err != nil {
		common.LogWarn("寫入回應快取失敗", zap.Error(err))
	}

	return content, nil
}

// Close 關閉 AI 服務
func (s *Service) Close() error {
	return s.client.Close()
}
