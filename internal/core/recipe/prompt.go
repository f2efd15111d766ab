package recipe

import (
	"fmt"
	"strings"

	"chefmate-server/internal/pkg/common"
)

// 提示詞中各欄位為空時的預設描述
const (
	defaultCuisine    = "any cuisine"
	defaultDietary    = "no dietary restrictions"
	defaultSkillLevel = "beginner"
)

// BuildPrompt 由食材與個人檔案組裝生成提示詞
// 模板列出八個必要段落（名稱、描述、時間、難度、食材份量、步驟、份數、小技巧），
// 上游模型被要求但不保證遵循此結構，結果視為盡力而為的結構化文字。
func BuildPrompt(ingredients []string, profile common.UserProfile) string {
	cuisinePrefs := common.JoinOrDefault(profile.CuisinePreferences, defaultCuisine)
	dietaryNeeds := common.JoinOrDefault(profile.DietaryNeeds, defaultDietary)
	skillLevel := common.DefaultIfEmpty(profile.SkillLevel, defaultSkillLevel)

	locationLine := ""
	if profile.Location != "" {
		locationLine = fmt.Sprintf("- Location: %s", profile.Location)
	}

	return fmt.Sprintf(`You are ChefMate, a helpful AI cooking assistant. Create a delicious recipe using these available ingredients: %s.

User preferences:
- Cuisine preferences: %s
- Dietary needs: %s
- Cooking skill level: %s
%s

Please provide:
1. Recipe name
2. Brief description
3. Prep time and cook time
4. Difficulty level
5. Complete ingredient list (including amounts for ingredients provided, suggest amounts for missing ingredients)
6. Step-by-step cooking instructions
7. Serving size
8. Any helpful tips

Format your response as a well-structured recipe that's easy to follow for someone with %s cooking skills.`,
		strings.Join(ingredients, ", "),
		cuisinePrefs,
		dietaryNeeds,
		skillLevel,
		locationLine,
		skillLevel)
}
