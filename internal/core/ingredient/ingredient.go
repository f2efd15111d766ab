package ingredient

import (
	"regexp"
	"strings"
)

// 前端食材快捷按鈕附帶的裝飾符號，去重比較前一律剝除
const markerRunes = "🍗🥩🐟🍤🥚🍚🍝🥔🧄🧅🥕🥬🍅🫑🥒🧀🥛🧈🫒🧂"

// 批量輸入以逗號、& 或獨立的 "and" 分隔
var bulkSplitPattern = regexp.MustCompile(`(?i)[,&]|\band\b`)

// Clean 去除裝飾符號與前後空白
func Clean(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(markerRunes, r) {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(cleaned)
}

// comparisonKey 計算去重比較鍵：剝除裝飾符號、去空白、轉小寫
func comparisonKey(value string) string {
	return strings.ToLower(Clean(value))
}

// Add 將清理後的食材加入清單
// 清理後為空或比較鍵與既有元素重複時不做任何改動，首次加入的形式與順序保留。
func Add(existing []string, raw string) []string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return existing
	}

	key := comparisonKey(cleaned)
	for _, item := range existing {
		if comparisonKey(item) == key {
			return existing
		}
	}

	return append(existing, cleaned)
}

// Remove 以原始元素精確匹配移除食材，大小寫不同視為未命中
func Remove(existing []string, target string) []string {
	out := make([]string, 0, len(existing))
	for _, item := range existing {
		if item != target {
			out = append(out, item)
		}
	}
	return out
}

// ParseBulkInput 解析一段自由輸入為食材清單
// 依分隔符切段、逐段修剪、丟棄空段，再依序經 Add 去重合併。
func ParseBulkInput(raw string) []string {
	var result []string
	for _, segment := range bulkSplitPattern.Split(raw, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		result = Add(result, segment)
	}
	return result
}

// Summary 產生使用者訊息文字，摘要目前的食材清單
func Summary(ingredients []string) string {
	return "I have these ingredients: " + strings.Join(ingredients, ", ") + ". Can you create a recipe for me?"
}
