package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Content ContentConfig `yaml:"content"`
}

type DBConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	// File enables a rotating log file next to stderr output.
	File string `yaml:"file"`
}

type ContentConfig struct {
	MaxAttachmentBytes int64 `yaml:"max_attachment_bytes" validate:"gte=0"`
	RecentWindowDays   int   `yaml:"recent_window_days" validate:"gte=1,lte=3650"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		DB: DBConfig{
			Path: "ideabox.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Content: ContentConfig{
			MaxAttachmentBytes: 25 << 20,
			RecentWindowDays:   7,
		},
	}
}

// Load builds the configuration from defaults, a .env file in the working
// directory, an optional YAML file named by IDEABOX_CONFIG_PATH, and
// IDEABOX_* environment variables, in that order.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("IDEABOX_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if dbPath := os.Getenv("IDEABOX_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("IDEABOX_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("IDEABOX_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if file := os.Getenv("IDEABOX_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	if v := os.Getenv("IDEABOX_RECENT_WINDOW_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid IDEABOX_RECENT_WINDOW_DAYS: %w", err)
		}
		cfg.Content.RecentWindowDays = days
	}
	if v := os.Getenv("IDEABOX_MAX_ATTACHMENT_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid IDEABOX_MAX_ATTACHMENT_BYTES: %w", err)
		}
		cfg.Content.MaxAttachmentBytes = n
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
