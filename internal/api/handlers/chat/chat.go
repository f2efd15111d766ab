package chat

import (
	"errors"
	"net/http"

	chatService "chefmate-server/internal/core/chat"
	"chefmate-server/internal/core/conversation"
	"chefmate-server/internal/core/ingredient"
	"chefmate-server/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveMessageRequest 保存聊天消息的請求
type SaveMessageRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"` // user 或 assistant
}

// AskRequest 發起一輪食譜對話的請求
type AskRequest struct {
	UserID      string             `json:"userId"`
	Ingredients []string           `json:"ingredients"`
	Profile     common.UserProfile `json:"profile"`
}

// Handler 聊天處理程序
type Handler struct {
	history      *chatService.Service
	orchestrator *conversation.Orchestrator
}

// NewHandler 創建聊天處理程序
func NewHandler(history *chatService.Service, orchestrator *conversation.Orchestrator) *Handler {
	return &Handler{
		history:      history,
		orchestrator: orchestrator,
	}
}

// HandleSaveMessage 保存一條聊天消息
func (h *Handler) HandleSaveMessage(c *gin.Context) {
	var req SaveMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	msg, err := h.history.Append(c.Request.Context(), req.UserID, req.Message, req.Type)
	if err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		common.LogError("保存聊天消息請求失敗",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": msg.ID})
}

// HandleGetHistory 讀取完整聊天記錄，沒有記錄時返回空陣列
func (h *Handler) HandleGetHistory(c *gin.Context) {
	userID := c.Param("userId")

	messages, err := h.history.Load(c.Request.Context(), userID)
	if err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get chat history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// HandleAsk 執行一輪食譜對話
// 整輪走協調器：追加使用者消息、呼叫生成、追加並返回助手消息。
// 同一使用者已有生成請求在進行中時返回 409。
func (h *Handler) HandleAsk(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 進入協調器前先走一次去重清理，防止同一份輸入夾帶重複食材
	cleaned := []string{}
	for _, raw := range req.Ingredients {
		cleaned = ingredient.Add(cleaned, raw)
	}

	common.LogInfo("開始處理對話請求",
		zap.String("request_id", requestID),
		zap.String("user_id", req.UserID),
		zap.Int("ingredient_count", len(cleaned)),
	)

	msg, err := h.orchestrator.AskForRecipe(c.Request.Context(), req.UserID, cleaned, req.Profile)
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{
				"error": "A recipe generation is already in progress",
				"code":  common.ErrCodeConflict,
			})
		case common.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			common.LogError("對話請求失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process conversation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
