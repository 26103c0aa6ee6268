package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		ForecastBaseURL string  `yaml:"forecast_base_url"`
		PriceBaseURL    string  `yaml:"price_base_url"`
		GridStep        float64 `yaml:"grid_step"`
		RequestsPerSec  float64 `yaml:"requests_per_sec"`
		PriceDays       int     `yaml:"price_days"`
	} `yaml:"data_source"`
	Schedule struct {
		FetchCron   string `yaml:"fetch_cron"`
		TrainCron   string `yaml:"train_cron"`
		PredictCron string `yaml:"predict_cron"`
	} `yaml:"schedule"`
	Storage struct {
		DataDir    string `yaml:"data_dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FORECAST_BASE_URL"); v != "" {
		cfg.DataSource.ForecastBaseURL = v
	}
	if v := os.Getenv("PRICE_BASE_URL"); v != "" {
		cfg.DataSource.PriceBaseURL = v
	}
	if v := os.Getenv("GRID_STEP"); v != "" {
		if step, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DataSource.GridStep = step
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.ForecastBaseURL == "" {
		cfg.DataSource.ForecastBaseURL = "https://api.open-meteo.com"
	}
	if cfg.DataSource.PriceBaseURL == "" {
		cfg.DataSource.PriceBaseURL = "https://api.porssisahko.net"
	}
	if cfg.DataSource.GridStep == 0 {
		cfg.DataSource.GridStep = 2.0
	}
	if cfg.DataSource.RequestsPerSec == 0 {
		cfg.DataSource.RequestsPerSec = 4.0
	}
	if cfg.DataSource.PriceDays == 0 {
		cfg.DataSource.PriceDays = 31
	}
	if cfg.Schedule.FetchCron == "" {
		cfg.Schedule.FetchCron = "0 0 */6 * * *"
	}
	if cfg.Schedule.TrainCron == "" {
		cfg.Schedule.TrainCron = "0 10 6 * * *"
	}
	if cfg.Schedule.PredictCron == "" {
		cfg.Schedule.PredictCron = "0 20 * * * *"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/powercast.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.DataSource.GridStep <= 0 {
		return fmt.Errorf("data_source.grid_step must be positive")
	}
	if c.DataSource.RequestsPerSec <= 0 {
		return fmt.Errorf("data_source.requests_per_sec must be positive")
	}
	if c.DataSource.PriceDays <= 0 {
		return fmt.Errorf("data_source.price_days must be positive")
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	return nil
}
