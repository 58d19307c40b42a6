package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Placeholder tokens left by setup templates; treated as missing.
var placeholderTokens = map[string]bool{
	"YOUR_BOT_TOKEN":          true,
	"YOUR_TELEGRAM_BOT_TOKEN": true,
	"REPLACE_ME":              true,
	"changeme":                true,
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`
	Market struct {
		BaseURL     string `yaml:"base_url"`
		Symbol      string `yaml:"symbol"`
		Interval    string `yaml:"interval"`
		CandleLimit int    `yaml:"candle_limit"`
	} `yaml:"market"`
	Monitor struct {
		RSIPeriod  int    `yaml:"rsi_period"`
		IntervalMs int    `yaml:"interval_ms"`
		CooldownMs int    `yaml:"cooldown_ms"`
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"monitor"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// MonitorInterval is the delay between the end of one monitor cycle and
// the start of the next.
func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.Monitor.IntervalMs) * time.Millisecond
}

// AlertCooldown is the minimum spacing between alerts per subscriber.
func (c *Config) AlertCooldown() time.Duration {
	return time.Duration(c.Monitor.CooldownMs) * time.Millisecond
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is tolerated.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.Market.BaseURL = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Market.Symbol = v
	}
	if v := os.Getenv("KLINE_INTERVAL"); v != "" {
		cfg.Market.Interval = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		cfg.Monitor.DigestCron = v
	}
	if v := os.Getenv("MONITOR_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Monitor.IntervalMs = n
		}
	}
	if v := os.Getenv("ALERT_COOLDOWN_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Monitor.CooldownMs = n
		}
	}
	if v := os.Getenv("RSI_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Monitor.RSIPeriod = n
		}
	}

	// Defaults
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = "https://api.binance.com"
	}
	if cfg.Market.Symbol == "" {
		cfg.Market.Symbol = "BTCUSDT"
	}
	if cfg.Market.Interval == "" {
		cfg.Market.Interval = "1m"
	}
	if cfg.Market.CandleLimit == 0 {
		cfg.Market.CandleLimit = 100
	}
	if cfg.Monitor.RSIPeriod == 0 {
		cfg.Monitor.RSIPeriod = 14
	}
	if cfg.Monitor.IntervalMs == 0 {
		cfg.Monitor.IntervalMs = 10000
	}
	if cfg.Monitor.CooldownMs == 0 {
		cfg.Monitor.CooldownMs = 300000
	}
	if cfg.Monitor.DigestCron == "" {
		cfg.Monitor.DigestCron = "0 0 8 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if placeholderTokens[c.Telegram.BotToken] {
		return fmt.Errorf("telegram.bot_token is a placeholder, set a real token")
	}
	if c.Monitor.RSIPeriod < 2 {
		return fmt.Errorf("monitor.rsi_period must be at least 2")
	}
	if c.Market.CandleLimit < c.Monitor.RSIPeriod+1 {
		return fmt.Errorf("market.candle_limit must be at least rsi_period+1 (%d)", c.Monitor.RSIPeriod+1)
	}
	return nil
}
