package llm

import "testing"

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider != ProviderGemini {
		t.Errorf("Provider = %s, want gemini", config.Provider)
	}
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		if config.GetModel(tier) == "" {
			t.Errorf("no model configured for tier %s", tier)
		}
	}
}

func TestGetModel_FallbackChain(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierStandard: "standard-model",
		},
	}

	if got := config.GetModel(TierAdvanced); got != "standard-model" {
		t.Errorf("GetModel(advanced) = %q, want fallback to standard", got)
	}

	config = &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "lite-model",
		},
	}
	if got := config.GetModel(TierAdvanced); got != "lite-model" {
		t.Errorf("GetModel(advanced) = %q, want fallback to lite", got)
	}
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		if got := cleanJSONBlock(tt.input); got != tt.want {
			t.Errorf("%s: cleanJSONBlock = %q, want %q", tt.name, got, tt.want)
		}
	}
}
