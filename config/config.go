package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	util "visitor-management/pkg/utils"
)

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

func (c TelegramConfig) IsConfigured() bool {
	return c.BotToken != "" && c.ChatID != 0
}

type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

type AppConfig struct {
	Port           string
	AppEnv         string
	MongoURI       string
	DBName         string
	PasetoSecret   string
	TokenTTL       time.Duration
	PasscodeLength int
	Location       *time.Location
	UploadPath     string
	MaxPhotoBytes  int64
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	SMTP           SMTPConfig
	Telegram       TelegramConfig
	Admin          AdminSeed
}

func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
}

// LoadConfig reads the environment (and .env, when present) into an AppConfig.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	cfg := &AppConfig{
		Port:           getEnv("PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		MongoURI:       getEnv("MONGOSTRING", ""),
		DBName:         getEnv("DB_NAME", "visitor-management-db"),
		PasetoSecret:   getEnv("PASETO_SECRET", ""),
		UploadPath:     getEnv("UPLOAD_PATH", "./uploads/photos"),
		MaxPhotoBytes:  1_000_000,
		AllowedOrigins: defaultOrigins,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", ""),
			Port: getEnv("SMTP_PORT", "587"),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
			From: getEnv("EMAIL_FROM", ""),
		},
		Admin: AdminSeed{
			Name:     getEnv("ADMIN_NAME", "Administrator"),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL is not a valid duration: %w", err)
	}
	cfg.TokenTTL = ttl

	cfg.PasscodeLength, err = strconv.Atoi(getEnv("PASSCODE_LENGTH", "6"))
	if err != nil || cfg.PasscodeLength < 4 || cfg.PasscodeLength > 32 {
		return nil, fmt.Errorf("PASSCODE_LENGTH must be an integer between 4 and 32")
	}

	cfg.Location, err = time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}

	if chatID := getEnv("TELEGRAM_CHAT_ID", ""); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be numeric: %w", err)
		}
		cfg.Telegram.ChatID = id
	}
	cfg.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", "")

	if err := cfg.resolveSecret(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveSecret validates PASETO_SECRET, generating a throwaway key outside production.
func (c *AppConfig) resolveSecret() error {
	if c.PasetoSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("PASETO_SECRET is required in production")
		}
		key, err := util.GenerateBase64Key(32)
		if err != nil {
			return err
		}
		slog.Warn("PASETO_SECRET not set, using an ephemeral key; tokens will not survive a restart")
		c.PasetoSecret = key
		return nil
	}

	secretBytes, err := base64.URLEncoding.DecodeString(c.PasetoSecret)
	if err != nil {
		return fmt.Errorf("PASETO_SECRET is not a valid Base64 URL-encoded string: %w", err)
	}
	if len(secretBytes) != 32 {
		return fmt.Errorf("PASETO_SECRET (decoded) must be exactly 32 bytes long, got %d", len(secretBytes))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
