package conversation

import (
	"context"
	"errors"
	"sync"

	"chefmate-server/internal/core/chat"
	"chefmate-server/internal/core/ingredient"
	"chefmate-server/internal/core/recipe"
	"chefmate-server/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrBusy 同一使用者已有一個生成請求在進行中
var ErrBusy = errors.New("a recipe generation is already in progress for this user")

// 生成失敗時的罐頭回覆，生成失敗不會中斷對話
const apologyText = "Sorry, I couldn't generate a recipe right now. Please try again! 😅"

// 成功生成食譜時附帶的助手文字
const deliveryText = "Here's a recipe I created just for you! 🍳"

// Orchestrator 對話協調器
// 一輪對話：追加使用者消息 → 呼叫生成服務 → 追加並返回助手消息。
// 本身不持有任何持久狀態，每次呼叫按需重讀存儲。
type Orchestrator struct {
	history   *chat.Service
	recipeSvc *recipe.Service

	mu      sync.Mutex
	pending map[string]bool
}

// NewOrchestrator 創建對話協調器
func NewOrchestrator(history *chat.Service, recipeSvc *recipe.Service) *Orchestrator {
	return &Orchestrator{
		history:   history,
		recipeSvc: recipeSvc,
		pending:   make(map[string]bool),
	}
}

// Busy 查詢某使用者是否有生成請求在進行中
func (o *Orchestrator) Busy(userID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending[userID]
}

// acquire 標記某使用者進入生成中狀態
func (o *Orchestrator) acquire(userID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending[userID] {
		return false
	}
	o.pending[userID] = true
	return true
}

// release 清除生成中標記
func (o *Orchestrator) release(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.pending, userID)
}

// AskForRecipe 執行一輪對話，返回助手消息
// 生成失敗降級為罐頭道歉消息而不是錯誤；一輪對話必定恰好產生一條助手消息。
// 同一使用者重疊的請求返回 ErrBusy。
func (o *Orchestrator) AskForRecipe(ctx context.Context, userID string, ingredients []string, profile common.UserProfile) (*chat.Message, error) {
	if userID == "" {
		return nil, common.NewValidationError("Missing userId")
	}
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("Please provide at least one ingredient")
	}

	if !o.acquire(userID) {
		return nil, ErrBusy
	}
	defer o.release(userID)

	// 食材清單折疊進使用者消息文字，不另外持久化
	userText := ingredient.Summary(ingredients)
	if _, err := o.history.Append(ctx, userID, userText, chat.RoleUser); err != nil {
		return nil, err
	}

	result, err := o.recipeSvc.Generate(ctx, ingredients, profile)
	if err != nil {
		common.LogWarn("食譜生成失敗，改用罐頭回覆",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return o.history.Append(ctx, userID, apologyText, chat.RoleAssistant)
	}

	return o.history.AppendWithRecipe(ctx, userID, deliveryText, chat.RoleAssistant, result.Content)
}
