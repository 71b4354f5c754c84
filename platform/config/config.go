// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// AIConfig provides settings for the lead analyzer backends.
type AIConfig interface {
	GetAnthropicAPIKey() string
	GetAnthropicModel() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// MailConfig provides settings for the SMTP responder.
type MailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUser() string
	GetSMTPPassword() string
	GetFromEmail() string
	GetFromName() string
	IsMailEnabled() bool
}

// TelegramConfig provides settings for the sales-channel notifier.
type TelegramConfig interface {
	GetTelegramBotToken() string
	GetTelegramChatID() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetLandingPagePath() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values. It is constructed once at
// process start and passed by reference into component constructors; nothing
// reads the environment after Load returns.
type Config struct {
	Env             string
	HTTPAddr        string
	DatabaseURL     string
	LandingPagePath string

	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	FromName     string

	TelegramBotToken string
	TelegramChatID   string

	CORSAllowAll bool
	CORSOrigins  []string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// AIConfig implementation
func (c *Config) GetAnthropicAPIKey() string { return c.AnthropicAPIKey }
func (c *Config) GetAnthropicModel() string  { return c.AnthropicModel }
func (c *Config) GetGeminiAPIKey() string    { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string     { return c.GeminiModel }

// MailConfig implementation
func (c *Config) GetSMTPHost() string     { return c.SMTPHost }
func (c *Config) GetSMTPPort() int        { return c.SMTPPort }
func (c *Config) GetSMTPUser() string     { return c.SMTPUser }
func (c *Config) GetSMTPPassword() string { return c.SMTPPassword }
func (c *Config) GetFromEmail() string    { return c.FromEmail }
func (c *Config) GetFromName() string     { return c.FromName }
func (c *Config) IsMailEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPassword != ""
}

// TelegramConfig implementation
func (c *Config) GetTelegramBotToken() string { return c.TelegramBotToken }
func (c *Config) GetTelegramChatID() string   { return c.TelegramChatID }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string        { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool      { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string   { return c.CORSOrigins }
func (c *Config) GetLandingPagePath() string { return c.LandingPagePath }

// Load reads configuration from environment variables.
//
// Missing optional integrations (SMTP credentials, Telegram destination, even
// the AI key) do not fail the load; the corresponding components degrade per
// their own contracts.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", ""))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "true"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpUser := getEnv("SMTP_USER", "")
	fromEmail := getEnv("FROM_EMAIL", "")
	if fromEmail == "" {
		fromEmail = smtpUser
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		LandingPagePath:  getEnv("LANDING_PAGE_PATH", "web/index.html"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUser:         smtpUser,
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		FromEmail:        fromEmail,
		FromName:         getEnv("FROM_NAME", "Aurora Lead Response"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
	}

	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("SMTP_PORT must be a valid port number")
	}
	if cfg.IsMailEnabled() && cfg.FromEmail == "" {
		return nil, fmt.Errorf("FROM_EMAIL or SMTP_USER is required when SMTP is configured")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
