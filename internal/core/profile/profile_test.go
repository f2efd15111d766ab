package profile

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"chefmate-server/internal/infrastructure/store"
	"chefmate-server/internal/pkg/common"
)

func newService() *Service {
	return NewService(store.NewMemoryStore())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	in := &common.UserProfile{
		CuisinePreferences: []string{"Italian", "Thai"},
		DietaryNeeds:       []string{"vegetarian"},
		SkillLevel:         "intermediate",
		Location:           "Taipei",
	}

	if err := svc.Save(ctx, "u1", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := svc.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: in=%+v out=%+v", in, out)
	}
}

func TestSaveValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p := &common.UserProfile{SkillLevel: "beginner"}

	if err := svc.Save(ctx, "", p); !common.IsValidationError(err) {
		t.Fatalf("expected ValidationError for missing userId, got %v", err)
	}
	if err := svc.Save(ctx, "u1", nil); !common.IsValidationError(err) {
		t.Fatalf("expected ValidationError for missing profile, got %v", err)
	}

	// 驗證失敗不寫入任何資料
	if _, err := svc.Load(ctx, "u1"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.Load(context.Background(), "newcomer")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for new user, got %v", err)
	}
}
