package recipe

import (
	"context"

	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 上游文字生成介面，由 AI 服務實作
type Generator interface {
	ProcessRequest(ctx context.Context, prompt string) (string, error)
}

// Result 食譜生成結果
// 上游模型的自由文字原樣傳遞，不做結構驗證
type Result struct {
	Content string `json:"content"`
}

// Service 食譜生成服務
type Service struct {
	config    *config.Config
	generator Generator
}

// NewService 創建食譜生成服務
func NewService(cfg *config.Config, generator Generator) *Service {
	return &Service{
		config:    cfg,
		generator: generator,
	}
}

// Generate 根據食材與個人檔案生成食譜
// 流程：驗證食材非空 → 確認憑證存在 → 組裝提示詞 → 單次呼叫上游模型。
func (s *Service) Generate(ctx context.Context, ingredients []string, profile common.UserProfile) (*Result, error) {
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("Please provide at least one ingredient")
	}

	if s.config.OpenAI.APIKey == "" {
		return nil, common.NewConfigurationError("OpenAI API key not configured")
	}

	prompt := BuildPrompt(ingredients, profile)

	common.LogDebug("食譜生成提示詞已組裝",
		zap.Int("ingredient_count", len(ingredients)),
		zap.Int("prompt_length", len(prompt)),
	)

	content, err := s.generator.ProcessRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if content == "" {
		return nil, common.NewGenerationError("No recipe generated", nil)
	}

	return &Result{Content: content}, nil
}
