package common

import (
	"strings"
)

// UserProfile 使用者個人檔案
// 欄位名稱與前端 JSON 結構一致，註冊時建立一次，之後每次生成食譜都會讀取
type UserProfile struct {
	CuisinePreferences []string `json:"cuisinePreferences"` // 偏好菜系
	DietaryNeeds       []string `json:"dietaryNeeds"`       // 飲食需求（過敏原、素食等）
	SkillLevel         string   `json:"skillLevel"`         // 烹飪技巧等級
	Location           string   `json:"location"`           // 所在地（可留空）
}

// JoinOrDefault 將字符串切片以逗號連接，空切片時返回預設值
func JoinOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// DefaultIfEmpty 返回非空字符串，否則返回預設值
func DefaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
