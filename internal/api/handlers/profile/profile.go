package profile

import (
	"errors"
	"net/http"

	profileService "chefmate-server/internal/core/profile"
	"chefmate-server/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SaveProfileRequest 保存個人檔案的請求
type SaveProfileRequest struct {
	UserID  string              `json:"userId"`
	Profile *common.UserProfile `json:"profile"`
}

// Handler 個人檔案處理程序
type Handler struct {
	profileService *profileService.Service
}

// NewHandler 創建個人檔案處理程序
func NewHandler(svc *profileService.Service) *Handler {
	return &Handler{profileService: svc}
}

// HandleSaveProfile 保存使用者個人檔案
func (h *Handler) HandleSaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId or profile data"})
		return
	}

	if err := h.profileService.Save(c.Request.Context(), req.UserID, req.Profile); err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId or profile data"})
			return
		}
		common.LogError("保存個人檔案請求失敗",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleGetProfile 讀取使用者個人檔案
func (h *Handler) HandleGetProfile(c *gin.Context) {
	userID := c.Param("userId")

	p, err := h.profileService.Load(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
			return
		}
		common.LogError("讀取個人檔案請求失敗",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": p})
}
