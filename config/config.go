package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken   string
	DBPath          string `validate:"required"`
	LogLevel        string `validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	WorkerCount     int    `validate:"min=1,max=64"`
	QueueSize       int    `validate:"min=1"`
	AdminChatID     int64
	ReportCron      string `validate:"required"`
	BuiltinHolidays bool
	Timezone        string `validate:"required"`
	ShiftLabels     string

	Location *time.Location `validate:"-"`
}

var validate = validator.New()

// ErrNoToken is returned by RequireToken when the bot cannot start.
var ErrNoToken = errors.New("TELEGRAM_TOKEN is not set")

// LoadConfig reads .env (if present) and the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DBPath:          envOrDefault("DB_PATH", "transapp.db"),
		LogLevel:        strings.ToLower(os.Getenv("LOG_LEVEL")),
		ReportCron:      envOrDefault("REPORT_CRON", "0 7 * * 1"),
		Timezone:        envOrDefault("TIMEZONE", "America/Bogota"),
		ShiftLabels:     strings.TrimSpace(os.Getenv("SHIFT_LABELS")),
	}

	var err error
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", 4); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = envInt("QUEUE_SIZE", 32); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(os.Getenv("ADMIN_CHAT_ID")); raw != "" {
		if cfg.AdminChatID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_ID: %w", err)
		}
	}
	if raw := strings.TrimSpace(os.Getenv("BUILTIN_HOLIDAYS")); raw != "" {
		if cfg.BuiltinHolidays, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("BUILTIN_HOLIDAYS: %w", err)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return cfg, nil
}

// RequireToken fails when the Telegram token is missing.
func (c *Config) RequireToken() error {
	if c.TelegramToken == "" {
		return ErrNoToken
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
