package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	API    APIConfig
	Charts ChartsConfig
}

// AppConfig holds dashboard server configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	LogDir      string
	OpenBrowser bool
	MaxPages    int
}

// APIConfig points at the presence analyzer backend
type APIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	AvatarBaseURL string
}

type ChartsConfig struct {
	Theme string
}

// Load reads .env when present and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	maxPages, err := strconv.Atoi(getEnv("MAX_PAGES", "256"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_PAGES: %w", err)
	}
	openBrowser, err := strconv.ParseBool(getEnv("OPEN_BROWSER", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPEN_BROWSER: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		OpenBrowser: openBrowser,
		MaxPages:    maxPages,
	}

	timeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	config.API = APIConfig{
		BaseURL:       getEnv("API_BASE_URL", "http://localhost:5000"),
		Timeout:       timeout,
		AvatarBaseURL: getEnv("AVATAR_BASE_URL", "https://intranet.stxnext.pl"),
	}

	config.Charts = ChartsConfig{
		Theme: getEnv("CHART_THEME", "macarons"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535, got %d", c.App.Port)
	}
	if c.App.MaxPages <= 0 {
		return fmt.Errorf("MAX_PAGES must be positive, got %d", c.App.MaxPages)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	return nil
}

// Address is the listen address of the dashboard.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
