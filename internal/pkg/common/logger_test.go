package common

import (
	"testing"

	"go.uber.org/zap"
)

func TestFilterSensitiveFieldsDropsCredentials(t *testing.T) {
	fields := []zap.Field{
		zap.String("api_key", "sk-secret"),
		zap.String("token", "secret"),
		zap.String("authorization", "Bearer secret"),
		zap.String("model", "gpt-3.5-turbo"),
	}

	filtered := filterSensitiveFields(fields)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 field after filtering, got %d", len(filtered))
	}
	if filtered[0].Key != "model" {
		t.Fatalf("unexpected surviving field %q", filtered[0].Key)
	}
}

func TestFilterSensitiveFieldsKeepsUsageFields(t *testing.T) {
	// total_tokens 是用量統計，只因鍵名含 token 不得被過濾
	fields := []zap.Field{
		zap.Int("total_tokens", 512),
		zap.Int("prompt_tokens", 300),
		zap.String("request_id", "abc"),
	}

	filtered := filterSensitiveFields(fields)
	if len(filtered) != 3 {
		t.Fatalf("usage fields were filtered: %d of 3 survived", len(filtered))
	}
}
