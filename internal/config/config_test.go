package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_SECRET_KEY", "secret")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.MaxFileSizeMB != 5 {
		t.Errorf("MaxFileSizeMB = %d, want 5", cfg.MaxFileSizeMB)
	}
	if cfg.MaxFileSizeBytes() != 5*1024*1024 {
		t.Errorf("MaxFileSizeBytes = %d", cfg.MaxFileSizeBytes())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("API_SECRET_KEY", "")
	t.Setenv("GEMINI_API_KEY", "key")

	if _, err := Load(); err == nil {
		t.Error("expected error when API_SECRET_KEY is missing")
	}
}

func TestLoad_MissingGeminiKey(t *testing.T) {
	t.Setenv("API_SECRET_KEY", "secret")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_SECRET_KEY", "secret")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_FILE_SIZE_MB", "10")
	t.Setenv("DEVELOPMENT", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9000" || cfg.MaxFileSizeMB != 10 || !cfg.Development {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE_MB", "not a number")
	if got := getEnvInt("MAX_FILE_SIZE_MB", 5); got != 5 {
		t.Errorf("getEnvInt = %d, want fallback 5", got)
	}
}
