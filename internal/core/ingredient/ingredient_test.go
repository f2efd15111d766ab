package ingredient

import (
	"reflect"
	"testing"
)

func TestAddStripsMarkersAndTrims(t *testing.T) {
	set := Add(nil, " 🍗 Chicken ")
	if len(set) != 1 || set[0] != "Chicken" {
		t.Fatalf("expected [Chicken], got %v", set)
	}
}

func TestAddRejectsEmptyAfterCleaning(t *testing.T) {
	set := Add(nil, " 🍗🧂 ")
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %v", set)
	}
}

func TestAddDedupIsCaseAndDecorationInsensitive(t *testing.T) {
	set := Add(nil, "Chicken")
	set = Add(set, "chicken")
	set = Add(set, "🍗 CHICKEN")
	set = Add(set, "  chicken  ")

	if len(set) != 1 {
		t.Fatalf("expected set of size 1, got %v", set)
	}
	// 首次加入的形式保留
	if set[0] != "Chicken" {
		t.Fatalf("expected first-inserted form Chicken, got %q", set[0])
	}
}

func TestRemoveIsExactMatch(t *testing.T) {
	set := Add(nil, "Chicken")
	set = Add(set, "chicken") // 被去重拒絕

	// 大小寫不符，不移除
	after := Remove(set, "CHICKEN")
	if len(after) != 1 {
		t.Fatalf("expected no-op removal, got %v", after)
	}

	// 精確匹配，移除成功
	after = Remove(set, "Chicken")
	if len(after) != 0 {
		t.Fatalf("expected empty set, got %v", after)
	}
}

func TestParseBulkInputSplitsAndPreservesOrder(t *testing.T) {
	got := ParseBulkInput("chicken, Rice and  Carrots")
	want := []string{"chicken", "Rice", "Carrots"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseBulkInputSplitsOnAmpersand(t *testing.T) {
	got := ParseBulkInput("Eggs & Milk & eggs")
	want := []string{"Eggs", "Milk"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseBulkInputKeepsWordsContainingAnd(t *testing.T) {
	// "and" 只在獨立成詞時才是分隔符
	got := ParseBulkInput("Sandwich bread, butter")
	want := []string{"Sandwich bread", "butter"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseBulkInputDiscardsEmptySegments(t *testing.T) {
	got := ParseBulkInput(",, chicken ,,  and ,")
	want := []string{"chicken"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSummary(t *testing.T) {
	got := Summary([]string{"chicken", "rice"})
	want := "I have these ingredients: chicken, rice. Can you create a recipe for me?"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
