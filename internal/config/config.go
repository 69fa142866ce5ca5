package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"CryptoSentinel/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level       string `yaml:"level"`
		Environment string `yaml:"environment"`
	} `yaml:"log"`
	Market struct {
		BaseURL  string         `yaml:"base_url"`
		Symbols  []string       `yaml:"symbols"`
		Interval model.Interval `yaml:"interval"`
		Limit    int            `yaml:"limit"`
		Timeout  time.Duration  `yaml:"timeout"`
	} `yaml:"market"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string         `yaml:"bot_token"`
		ChatID   string         `yaml:"chat_id"`
		Language model.Language `yaml:"language"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
		StateFile  string `yaml:"state_file"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`

	envErrs []error
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Log.Environment = v
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Market.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("INTERVAL"); v != "" {
		c.Market.Interval = model.Interval(v)
	}
	if v := os.Getenv("KLINE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.envErrs = append(c.envErrs, fmt.Errorf("KLINE_LIMIT %q is not a number", v))
		} else {
			c.Market.Limit = n
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		c.Schedule.RefreshCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("LANGUAGE"); v != "" {
		c.Telegram.Language = model.Language(v)
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		c.Database.StateFile = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Environment == "" {
		c.Log.Environment = "production"
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://api.binance.com/api/v3"
	}
	if len(c.Market.Symbols) == 0 {
		c.Market.Symbols = []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "BNBUSDT"}
	}
	if c.Market.Interval == "" {
		c.Market.Interval = model.Interval1h
	}
	// 1000 candles keep EMA200 and MACD in line with charting tools
	if c.Market.Limit == 0 {
		c.Market.Limit = 1000
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 30 * time.Second
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 */15 * * * *"
	}
	if c.Telegram.Language == "" {
		c.Telegram.Language = model.LangEN
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/crypto_sentinel.db"
	}
	if c.Database.StateFile == "" {
		c.Database.StateFile = "data/state.json"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9102"
	}
}

// Validate checks the watchlist settings. Telegram credentials are optional;
// without them the daemon only logs and records.
func (c *Config) Validate() error {
	if len(c.envErrs) > 0 {
		return errors.Join(c.envErrs...)
	}
	if len(c.Market.Symbols) == 0 {
		return fmt.Errorf("market.symbols must not be empty")
	}
	if !c.Market.Interval.Valid() {
		return fmt.Errorf("market.interval %q is not supported", c.Market.Interval)
	}
	if c.Market.Limit < 1 || c.Market.Limit > 1000 {
		return fmt.Errorf("market.limit must be within 1..1000, got %d", c.Market.Limit)
	}
	if !c.Telegram.Language.Valid() {
		return fmt.Errorf("telegram.language %q is not supported", c.Telegram.Language)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether notifications can be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
