// Load envs from .env
// Load YAML config
// Apply env overrides and defaults
// Validate config

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath    = "configs/config.yaml"
	DefaultMaxConcurrent = 5
	DefaultScreenshotDir = "logs/screenshots"
)

type Config struct {
	//Snapshot tree lives under <RootDir>/job_applications
	RootDir string `yaml:"root_dir" env:"JOBQUEST_ROOT"`

	//Browser
	Headless    *bool  `yaml:"headless"`
	UserAgent   string `yaml:"user_agent"`
	CookiesPath string `yaml:"cookies_path"`

	//Description fetching
	MaxConcurrent     int     `yaml:"max_concurrent"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	//Debugging
	DebugScreenshots bool   `yaml:"debug_screenshots"`
	ScreenshotDir    string `yaml:"screenshot_dir"`

	//Optional notification of new and changed jobs
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

// Load reads .env, then the YAML file at JOBQUEST_CONFIG (or configs/config.yaml).
// A missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("JOBQUEST_CONFIG")
	if path == "" {
		path = DefaultConfigPath
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		//defaults only
	case err != nil:
		log.Printf("⚠️ Could not read %s: %v", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if root := os.Getenv("JOBQUEST_ROOT"); root != "" {
		c.RootDir = root
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.RootDir == "" {
		c.RootDir = "."
	}
	if c.Headless == nil {
		headless := true
		c.Headless = &headless
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = DefaultScreenshotDir
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.MaxConcurrent < 1 {
		problems = append(problems, fmt.Sprintf("max_concurrent must be >= 1, got %d", c.MaxConcurrent))
	}
	if c.RequestsPerSecond < 0 {
		problems = append(problems, fmt.Sprintf("requests_per_second must be >= 0, got %g", c.RequestsPerSecond))
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		problems = append(problems, "telegram_token and telegram_chat_id must be set together")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsHeadless defaults to true when the config was built by hand.
func (c *Config) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
