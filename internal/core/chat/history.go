package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"chefmate-server/internal/infrastructure/store"
	"chefmate-server/internal/pkg/common"

	"go.uber.org/zap"
)

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 聊天消息，建立後不可變
// 欄位名稱沿用前端的線上格式：message 為內容、type 為角色
type Message struct {
	ID        int64  `json:"id"`
	Text      string `json:"message"`
	Role      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Recipe    string `json:"recipe,omitempty"` // 助手消息可附帶的食譜原文
}

// Service 聊天記錄存儲
// 每位使用者一個 JSON 陣列，鍵為 chat_<userId>，每次追加整筆改寫。
// 讀取-修改-寫回不是原子操作，因此同一使用者的追加以行程內鎖序列化，
// 避免並發追加互相覆蓋；不同使用者之間完全獨立。
type Service struct {
	store store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService 創建聊天記錄服務
func NewService(s store.Store) *Service {
	return &Service{
		store: s,
		locks: make(map[string]*sync.Mutex),
	}
}

// userLock 取得某使用者的追加鎖
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Append 追加一條消息並返回
// userId、text、role 缺一即為 ValidationError，不寫入任何資料。
func (s *Service) Append(ctx context.Context, userID, text, role string) (*Message, error) {
	return s.AppendWithRecipe(ctx, userID, text, role, "")
}

// AppendWithRecipe 追加一條帶食譜附件的消息
func (s *Service) AppendWithRecipe(ctx context.Context, userID, text, role, recipe string) (*Message, error) {
	if userID == "" || text == "" || role == "" {
		return nil, common.NewValidationError("Missing required fields")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 消息 ID 取毫秒時間戳；快速連續追加時遞增上一筆 ID，
	// 保證同一使用者記錄內嚴格遞增且唯一
	now := time.Now()
	id := now.UnixMilli()
	if n := len(history); n > 0 && history[n-1].ID >= id {
		id = history[n-1].ID + 1
	}

	msg := Message{
		ID:        id,
		Text:      text,
		Role:      role,
		Timestamp: now.UTC().Format(time.RFC3339),
		Recipe:    recipe,
	}

	history = append(history, msg)
	if err := store.SetJSON(ctx, s.store, store.ChatKeyPrefix+userID, history); err != nil {
		common.LogError("保存聊天消息失敗",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	common.LogInfo("聊天消息已追加",
		zap.String("user_id", userID),
		zap.String("role", role),
		zap.Int64("message_id", msg.ID),
		zap.Int("history_length", len(history)),
	)

	return &msg, nil
}

// Load 讀取完整聊天記錄，沒有記錄時返回空切片
// 讀取路徑的存儲失敗以空記錄降級，寫入路徑則不會吞掉錯誤。
func (s *Service) Load(ctx context.Context, userID string) ([]Message, error) {
	if userID == "" {
		return nil, common.NewValidationError("Missing userId")
	}

	history, err := s.load(ctx, userID)
	if err != nil {
		common.LogWarn("讀取聊天記錄失敗，以空記錄降級",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return []Message{}, nil
	}
	return history, nil
}

// load 讀取原始聊天記錄，不存在視為空
func (s *Service) load(ctx context.Context, userID string) ([]Message, error) {
	var history []Message
	if err := store.GetJSON(ctx, s.store, store.ChatKeyPrefix+userID, &history); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []Message{}, nil
		}
		return nil, err
	}
	return history, nil
}
