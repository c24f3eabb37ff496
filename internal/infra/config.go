package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderSynthetic = "synthetic"

	defaultMaxUploadBytes = 5 * 1024 * 1024
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv               string
	Provider             string
	GeminiAPIKey         string
	GeminiModel          string
	GeminiBaseURL        string
	GeminiTimeout        time.Duration
	OutputDir            string
	MaxUploadBytes       int64
	SyntheticDelay       time.Duration
	SyntheticFailureRate float64
}

// LoadConfig reads optional .env files and then the process environment,
// applying defaults where needed. Malformed or out of range values are errors.
// A missing API key is not; it is reported before any batch starts.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Provider:      strings.ToLower(getEnv("MOCKUP_PROVIDER", ProviderGemini)),
		GeminiAPIKey:  strings.TrimSpace(getEnv("GEMINI_API_KEY", os.Getenv("API_KEY"))),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		OutputDir:     getEnv("MOCKUP_OUTPUT_DIR", "./mockups"),
	}

	timeoutSeconds, err := getEnvInt("GEMINI_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	cfg.GeminiTimeout = time.Second * time.Duration(timeoutSeconds)

	maxUpload, err := getEnvInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	delayMillis, err := getEnvInt("SYNTHETIC_DELAY_MS", 1500)
	if err != nil {
		return nil, err
	}
	cfg.SyntheticDelay = time.Millisecond * time.Duration(delayMillis)

	rate, err := getEnvFloat("SYNTHETIC_FAILURE_RATE", 0)
	if err != nil {
		return nil, err
	}
	cfg.SyntheticFailureRate = rate

	switch cfg.Provider {
	case ProviderGemini, ProviderSynthetic:
	default:
		return nil, fmt.Errorf("MOCKUP_PROVIDER %q is not supported", cfg.Provider)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.SyntheticDelay < 0 {
		return nil, fmt.Errorf("SYNTHETIC_DELAY_MS must not be negative")
	}
	if cfg.GeminiTimeout <= 0 {
		return nil, fmt.Errorf("GEMINI_TIMEOUT_SECONDS must be positive")
	}
	if cfg.SyntheticFailureRate < 0 || cfg.SyntheticFailureRate > 1 {
		return nil, fmt.Errorf("SYNTHETIC_FAILURE_RATE must be between 0 and 1")
	}

	return cfg, nil
}

// HasGeminiCredentials reports whether an API key was configured.
func (c *Config) HasGeminiCredentials() bool {
	return c != nil && c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
