package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"GoldBoard/internal/calculator"
)

// Duration wraps time.Duration so YAML values like "15m" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL  string `yaml:"base_url"` // set to use the REST fetcher instead of Yahoo
		APIKey   string `yaml:"api_key"`
		Symbol   string `yaml:"symbol"`
		Interval string `yaml:"interval"`
		Window   string `yaml:"window"`
	} `yaml:"data_source"`
	Indicators struct {
		FastWindow   int    `yaml:"fast_window"`
		SlowWindow   int    `yaml:"slow_window"`
		RSIPeriod    int    `yaml:"rsi_period"`
		RSISmoothing string `yaml:"rsi_smoothing"` // "simple" or "exponential"
	} `yaml:"indicators"`
	Cache struct {
		DataTTL Duration `yaml:"data_ttl"`
		NewsTTL Duration `yaml:"news_ttl"`
	} `yaml:"cache"`
	Schedule struct {
		DataCron string `yaml:"data_cron"`
		NewsCron string `yaml:"news_cron"`
	} `yaml:"schedule"`
	News struct {
		PageURL string `yaml:"page_url"`
		Limit   int    `yaml:"limit"`
	} `yaml:"news"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
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
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("RSI_SMOOTHING"); v != "" {
		cfg.Indicators.RSISmoothing = v
	}
	if v := os.Getenv("NEWS_PAGE_URL"); v != "" {
		cfg.News.PageURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "XAUUSD"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "15m"
	}
	if cfg.DataSource.Window == "" {
		cfg.DataSource.Window = "1mo"
	}
	if cfg.Indicators.FastWindow == 0 {
		cfg.Indicators.FastWindow = 20
	}
	if cfg.Indicators.SlowWindow == 0 {
		cfg.Indicators.SlowWindow = 50
	}
	if cfg.Indicators.RSIPeriod == 0 {
		cfg.Indicators.RSIPeriod = 14
	}
	if cfg.Indicators.RSISmoothing == "" {
		cfg.Indicators.RSISmoothing = string(calculator.SmoothingExponential)
	}
	if cfg.Cache.DataTTL == 0 {
		cfg.Cache.DataTTL = Duration(15 * time.Minute)
	}
	if cfg.Cache.NewsTTL == 0 {
		cfg.Cache.NewsTTL = Duration(time.Hour)
	}
	if cfg.Schedule.DataCron == "" {
		cfg.Schedule.DataCron = "@every 15m"
	}
	if cfg.Schedule.NewsCron == "" {
		cfg.Schedule.NewsCron = "@every 1h"
	}
	if cfg.News.PageURL == "" {
		cfg.News.PageURL = "https://www.kitco.com/news/"
	}
	if cfg.News.Limit == 0 {
		cfg.News.Limit = 5
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.Indicators.FastWindow <= 0 {
		return fmt.Errorf("indicators.fast_window must be positive")
	}
	if c.Indicators.SlowWindow <= 0 {
		return fmt.Errorf("indicators.slow_window must be positive")
	}
	if c.Indicators.RSIPeriod <= 0 {
		return fmt.Errorf("indicators.rsi_period must be positive")
	}
	if _, err := calculator.ParseSmoothing(c.Indicators.RSISmoothing); err != nil {
		return fmt.Errorf("indicators.rsi_smoothing: %w", err)
	}
	if c.Cache.DataTTL <= 0 || c.Cache.NewsTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.News.Limit <= 0 {
		return fmt.Errorf("news.limit must be positive")
	}
	return nil
}

// IndicatorParams converts the config block to calculator parameters.
// Call Validate first; the smoothing string must already be parseable.
func (c *Config) IndicatorParams() calculator.Params {
	smoothing, _ := calculator.ParseSmoothing(c.Indicators.RSISmoothing)
	return calculator.Params{
		Fast:      c.Indicators.FastWindow,
		Slow:      c.Indicators.SlowWindow,
		RSIPeriod: c.Indicators.RSIPeriod,
		Smoothing: smoothing,
	}
}
