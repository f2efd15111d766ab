package recipe

import (
	"net/http"

	recipeService "chefmate-server/internal/core/recipe"
	"chefmate-server/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRecipeRequest 使用食材與個人檔案生成食譜的請求
type GenerateRecipeRequest struct {
	Ingredients []string           `json:"ingredients"`
	Profile     common.UserProfile `json:"profile"`
}

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.Service
}

// NewHandler 創建食譜處理程序
func NewHandler(svc *recipeService.Service) *Handler {
	return &Handler{recipeService: svc}
}

// HandleGenerateRecipe 生成食譜
// 食材缺失 → 400；憑證缺失或上游失敗 → 500。
func (h *Handler) HandleGenerateRecipe(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide at least one ingredient"})
		return
	}

	result, err := h.recipeService.Generate(c.Request.Context(), req.Ingredients, req.Profile)
	if err != nil {
		switch {
		case common.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case common.IsConfigurationError(err):
			common.LogError("食譜生成設定缺失",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OpenAI API key not configured"})
		default:
			common.LogError("食譜生成失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": result.Content})
}
