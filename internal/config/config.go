package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the service.
type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	TelegramToken  string
	TelegramChatID int64
	ReminderTime   string
}

// Load reads configuration from environment variables with sane defaults.
// The Telegram reminder push is optional: it stays off unless both
// TELEGRAM_TOKEN and TELEGRAM_CHAT_ID are set.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		ReminderTime:  strings.TrimSpace(os.Getenv("REMINDER_TIME")),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "homekeeper.db"
	}
	if cfg.ReminderTime == "" {
		cfg.ReminderTime = "08:00"
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// RemindersEnabled reports whether the Telegram reminder push is configured.
func (c Config) RemindersEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
