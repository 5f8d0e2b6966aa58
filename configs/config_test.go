package configs

import (
	"os"
	"testing"
)

// setupTestEnv sets up required environment variables for config unmarshaling
func setupTestEnv() {
	os.Setenv("APP_DEBUG", "false")
	os.Setenv("APP_ENV", "test")
	os.Setenv("APP_PORT", "3000")
	os.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("OPENAI_MODEL", "gpt-4o-mini")
}

// cleanupTestEnv cleans up environment variables after tests
func cleanupTestEnv() {
	os.Unsetenv("APP_DEBUG")
	os.Unsetenv("APP_ENV")
	os.Unsetenv("APP_PORT")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	os.Unsetenv("OPENAI_API_KEY")
	os.Unsetenv("OPENAI_MODEL")
	os.Unsetenv("RETRY_MAX_RETRIES")
	os.Unsetenv("RETRY_BASE_DELAY_MS")
	os.Unsetenv("RATE_LIMIT_ENABLED")
	os.Unsetenv("RATE_LIMIT_DAILY_MESSAGE_LIMIT")
	os.Unsetenv("RATE_LIMIT_RESET_HOUR")
	os.Unsetenv("AUTH_ENABLED")
	os.Unsetenv("AUTH_CODE_WORD")
	os.Unsetenv("SESSION_EXPIRY_HOURS")
}

// TestConfigDefaults tests that the documented defaults apply when no env
// vars or config file override them
func TestConfigDefaults(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelayMs != 1000 {
		t.Errorf("expected default base_delay_ms 1000, got %d", cfg.Retry.BaseDelayMs)
	}
	if cfg.RateLimit.DailyMessageLimit != 50 {
		t.Errorf("expected default daily limit 50, got %d", cfg.RateLimit.DailyMessageLimit)
	}
	if cfg.RateLimit.ResetHour != 0 {
		t.Errorf("expected default reset hour 0, got %d", cfg.RateLimit.ResetHour)
	}
	if !cfg.Auth.Enabled {
		t.Error("expected auth enabled by default")
	}
	if cfg.Auth.CodeWord != "translate" {
		t.Errorf("expected default code word translate, got %s", cfg.Auth.CodeWord)
	}
	if cfg.Session.ExpiryHours != 24 {
		t.Errorf("expected default session expiry 24h, got %d", cfg.Session.ExpiryHours)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", cfg.OpenAI.Model)
	}
}

// TestConfigEnvOverrides tests that environment variables override defaults
func TestConfigEnvOverrides(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("RETRY_MAX_RETRIES", "5")
	os.Setenv("RATE_LIMIT_DAILY_MESSAGE_LIMIT", "10")
	os.Setenv("RATE_LIMIT_RESET_HOUR", "6")
	os.Setenv("AUTH_CODE_WORD", "sesame")
	os.Setenv("SESSION_EXPIRY_HOURS", "48")

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Retry.MaxRetries != 5 {
		t.Errorf("expected max_retries 5, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.RateLimit.DailyMessageLimit != 10 {
		t.Errorf("expected daily limit 10, got %d", cfg.RateLimit.DailyMessageLimit)
	}
	if cfg.RateLimit.ResetHour != 6 {
		t.Errorf("expected reset hour 6, got %d", cfg.RateLimit.ResetHour)
	}
	if cfg.Auth.CodeWord != "sesame" {
		t.Errorf("expected code word sesame, got %s", cfg.Auth.CodeWord)
	}
	if cfg.Session.ExpiryHours != 48 {
		t.Errorf("expected session expiry 48h, got %d", cfg.Session.ExpiryHours)
	}
}

// TestTelegramAndOpenAIUnmarshal tests credential fields unmarshal from env
func TestTelegramAndOpenAIUnmarshal(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Telegram.BotToken != "test-token" {
		t.Errorf("expected bot token test-token, got %s", cfg.Telegram.BotToken)
	}
	if cfg.OpenAI.APIKey != "test-key" {
		t.Errorf("expected api key test-key, got %s", cfg.OpenAI.APIKey)
	}
}
