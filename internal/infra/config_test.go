package infra

import (
	"strings"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "MOCKUP_PROVIDER", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL",
		"GEMINI_BASE_URL", "GEMINI_TIMEOUT_SECONDS", "MOCKUP_OUTPUT_DIR",
		"MAX_UPLOAD_BYTES", "SYNTHETIC_DELAY_MS", "SYNTHETIC_FAILURE_RATE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Fatalf("Provider mismatch: got %q", cfg.Provider)
	}
	if cfg.GeminiModel != "gemini-2.5-flash-image" {
		t.Fatalf("GeminiModel mismatch: got %q", cfg.GeminiModel)
	}
	if cfg.MaxUploadBytes != 5*1024*1024 {
		t.Fatalf("MaxUploadBytes mismatch: got %d", cfg.MaxUploadBytes)
	}
	if cfg.GeminiTimeout != 120*time.Second {
		t.Fatalf("GeminiTimeout mismatch: got %s", cfg.GeminiTimeout)
	}
	if cfg.HasGeminiCredentials() {
		t.Fatalf("expected no credentials by default")
	}
}

func TestLoadConfigFallsBackToAPIKey(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GeminiAPIKey != "legacy-key" || !cfg.HasGeminiCredentials() {
		t.Fatalf("expected API_KEY fallback, got %q", cfg.GeminiAPIKey)
	}

	t.Setenv("GEMINI_API_KEY", "primary-key")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GeminiAPIKey != "primary-key" {
		t.Fatalf("GEMINI_API_KEY should win, got %q", cfg.GeminiAPIKey)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MOCKUP_PROVIDER", "dalle")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestLoadConfigRejectsBadFailureRate(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SYNTHETIC_FAILURE_RATE", "1.5")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for out of range failure rate")
	}

	t.Setenv("SYNTHETIC_FAILURE_RATE", "abc")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for malformed failure rate")
	}
}

func TestLoadConfigSyntheticProvider(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MOCKUP_PROVIDER", "Synthetic")
	t.Setenv("SYNTHETIC_DELAY_MS", "10")
	t.Setenv("SYNTHETIC_FAILURE_RATE", "0.25")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Provider != ProviderSynthetic {
		t.Fatalf("Provider mismatch: got %q", cfg.Provider)
	}
	if cfg.SyntheticDelay != 10*time.Millisecond || cfg.SyntheticFailureRate != 0.25 {
		t.Fatalf("synthetic settings mismatch: %s %v", cfg.SyntheticDelay, cfg.SyntheticFailureRate)
	}
}

func TestLoadConfigRejectsMalformedIntegers(t *testing.T) {
	for _, key := range []string{"GEMINI_TIMEOUT_SECONDS", "MAX_UPLOAD_BYTES", "SYNTHETIC_DELAY_MS"} {
		t.Run(key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(key, "12abc")
			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("expected error for malformed %s", key)
			}
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("error should name %s, got %v", key, err)
			}
		})
	}

	clearConfigEnv(t)
	t.Setenv("SYNTHETIC_DELAY_MS", "-5")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for negative synthetic delay")
	}
}

func TestLoadConfigParsesIntegers(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GEMINI_TIMEOUT_SECONDS", " 30 ")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GeminiTimeout != 30*time.Second || cfg.MaxUploadBytes != 1<<20 {
		t.Fatalf("integer settings mismatch: %s %d", cfg.GeminiTimeout, cfg.MaxUploadBytes)
	}
}
