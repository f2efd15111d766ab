package openai

import (
	"context"
	"net/http"
	"time"

	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://api.openai.com/v1"

// 固定的助手人設，所有生成請求共用
const systemPrompt = "You are ChefMate, a friendly and knowledgeable AI cooking assistant. Always provide practical, delicious recipes with clear instructions."

// Client OpenAI Chat Completions 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// chatMessage 對話消息
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest Chat Completions 請求
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// chatResponse Chat Completions 響應
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewClient 創建 OpenAI 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenAI.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 單次呼叫上游模型生成回應
// 不做重試；非 200、空 choices 或空內容一律視為 GenerationError。
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model: c.config.OpenAI.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.config.OpenAI.MaxTokens,
		Temperature: c.config.OpenAI.Temperature,
	}

	common.LogInfo("Sending request to OpenAI",
		zap.String("model", req.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.config.OpenAI.APIKey).
		SetBody(req).
		Post("/chat/completions")
	common.LogAICall(time.Since(start), err)

	if err != nil {
		return "", common.NewGenerationError("failed to call OpenAI", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("OpenAI 返回錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
			zap.String("response", resp.String()),
		)
		return "", common.NewGenerationError("OpenAI API returned status "+resp.Status(), nil)
	}

	var result chatResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", common.NewGenerationError("failed to parse OpenAI response", err)
	}

	if len(result.Choices) == 0 {
		return "", common.NewGenerationError("no choices in OpenAI response", nil)
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", common.NewGenerationError("empty content in OpenAI response", nil)
	}

	common.LogInfo("Successfully generated response from OpenAI",
		zap.String("model", req.Model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return content, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
