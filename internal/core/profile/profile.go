package profile

import (
	"context"
	"errors"

	"chefmate-server/internal/infrastructure/store"
	"chefmate-server/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 個人檔案存儲，鍵值存儲上的薄封裝
// 每位使用者一筆檔案，鍵為 profile_<userId>
type Service struct {
	store store.Store
}

// NewService 創建個人檔案服務
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Save 保存個人檔案
// userId 與 profile 缺一即為 ValidationError，不寫入任何資料。
func (s *Service) Save(ctx context.Context, userID string, p *common.UserProfile) error {
	if userID == "" || p == nil {
		return common.NewValidationError("Missing userId or profile data")
	}

	if err := store.SetJSON(ctx, s.store, store.ProfileKeyPrefix+userID, p); err != nil {
		common.LogError("保存個人檔案失敗",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return err
	}

	common.LogInfo("個人檔案已保存", zap.String("user_id", userID))
	return nil
}

// Load 讀取個人檔案
// 新用戶尚未建檔屬於預期情況，返回 common.ErrNotFound，不記錄為錯誤。
func (s *Service) Load(ctx context.Context, userID string) (*common.UserProfile, error) {
	if userID == "" {
		return nil, common.NewValidationError("Missing userId")
	}

	var p common.UserProfile
	if err := store.GetJSON(ctx, s.store, store.ProfileKeyPrefix+userID, &p); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		common.LogError("讀取個人檔案失敗",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	return &p, nil
}
