package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"MarketPulse/internal/collector"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider  string `yaml:"provider"` // yahoo, provider or mock
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		Benchmark string `yaml:"benchmark"`
	} `yaml:"data_source"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
		Exchange   string `yaml:"exchange"` // MIC of the trading calendar
	} `yaml:"schedule"`
	Analytics struct {
		HistoryDays            int   `yaml:"history_days"`
		SMAPeriods             []int `yaml:"sma_periods"`
		EMAPeriods             []int `yaml:"ema_periods"`
		ADRPeriod              int   `yaml:"adr_period"`
		ATRPeriod              int   `yaml:"atr_period"`
		TrendPeriod            int   `yaml:"trend_period"`
		RSIPeriod              int   `yaml:"rsi_period"`
		RotationRatioPeriod    int   `yaml:"rotation_ratio_period"`
		RotationMomentumPeriod int   `yaml:"rotation_momentum_period"`
		RotationTrail          int   `yaml:"rotation_trail"`
		Concurrency            int   `yaml:"concurrency"`
	} `yaml:"analytics"`
	Watchlist struct {
		File string   `yaml:"file"`
		Seed []string `yaml:"seed"`
	} `yaml:"watchlist"`
	Cache struct {
		RedisURL string        `yaml:"redis_url"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json or console
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is not an error; existing variables win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
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
	overrides := []struct {
		env string
		dst *string
	}{
		{"TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID},
		{"DATA_PROVIDER", &cfg.DataSource.Provider},
		{"PROVIDER_BASE_URL", &cfg.DataSource.BaseURL},
		{"PROVIDER_API_KEY", &cfg.DataSource.APIKey},
		{"BENCHMARK", &cfg.DataSource.Benchmark},
		{"HTTPS_PROXY", &cfg.Proxy},
		{"REDIS_URL", &cfg.Cache.RedisURL},
		{"SQLITE_PATH", &cfg.Database.SQLitePath},
		{"HTTP_ADDR", &cfg.HTTP.Addr},
		{"CRON_DAILY", &cfg.Schedule.DailyCron},
		{"CRON_WEEKLY", &cfg.Schedule.WeeklyCron},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FORMAT", &cfg.Log.Format},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist.Seed = strings.Split(v, ",")
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := collector.DefaultOptions()
	a := &c.Analytics

	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
		if c.DataSource.BaseURL != "" {
			c.DataSource.Provider = "provider"
		}
	}
	if c.DataSource.Benchmark == "" {
		c.DataSource.Benchmark = def.Benchmark
	}
	c.DataSource.Benchmark = strings.ToUpper(c.DataSource.Benchmark)
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	if c.Schedule.WeeklyCron == "" {
		c.Schedule.WeeklyCron = "0 0 8 * * 1"
	}
	if c.Schedule.Exchange == "" {
		c.Schedule.Exchange = "xnys"
	}
	if a.HistoryDays == 0 {
		a.HistoryDays = def.HistoryDays
	}
	if a.SMAPeriods == nil {
		a.SMAPeriods = def.SMAPeriods
	}
	if a.EMAPeriods == nil {
		a.EMAPeriods = def.EMAPeriods
	}
	if a.ADRPeriod == 0 {
		a.ADRPeriod = def.ADRPeriod
	}
	if a.ATRPeriod == 0 {
		a.ATRPeriod = def.ATRPeriod
	}
	if a.TrendPeriod == 0 {
		a.TrendPeriod = def.TrendPeriod
	}
	if a.RSIPeriod == 0 {
		a.RSIPeriod = def.RSIPeriod
	}
	if a.RotationRatioPeriod == 0 {
		a.RotationRatioPeriod = def.RotationRatioPeriod
	}
	if a.RotationMomentumPeriod == 0 {
		a.RotationMomentumPeriod = def.RotationMomentumPeriod
	}
	if a.RotationTrail == 0 {
		a.RotationTrail = def.RotationTrail
	}
	if a.Concurrency == 0 {
		a.Concurrency = def.Concurrency
	}
	if c.Watchlist.File == "" {
		c.Watchlist.File = "data/watchlist.json"
	}
	if c.Watchlist.Seed == nil {
		c.Watchlist.Seed = []string{"QQQ", "IWM", "XLK", "XLF", "XLE", "XLV"}
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/marketpulse.db"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// CollectorOptions maps the analytics section onto collector options.
func (c *Config) CollectorOptions() collector.Options {
	a := c.Analytics
	return collector.Options{
		Benchmark:              c.DataSource.Benchmark,
		HistoryDays:            a.HistoryDays,
		SMAPeriods:             a.SMAPeriods,
		EMAPeriods:             a.EMAPeriods,
		ADRPeriod:              a.ADRPeriod,
		ATRPeriod:              a.ATRPeriod,
		TrendPeriod:            a.TrendPeriod,
		RSIPeriod:              a.RSIPeriod,
		RotationRatioPeriod:    a.RotationRatioPeriod,
		RotationMomentumPeriod: a.RotationMomentumPeriod,
		RotationTrail:          a.RotationTrail,
		Concurrency:            a.Concurrency,
	}
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

// cronParser matches cron.WithSeconds used by the scheduler.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.DataSource.Benchmark == "" {
		return fmt.Errorf("data_source.benchmark is required")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "provider":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the provider source")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, provider, mock", c.DataSource.Provider)
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}

	a := c.Analytics
	periods := map[string]int{
		"analytics.history_days":             a.HistoryDays,
		"analytics.adr_period":               a.ADRPeriod,
		"analytics.atr_period":               a.ATRPeriod,
		"analytics.rsi_period":               a.RSIPeriod,
		"analytics.rotation_ratio_period":    a.RotationRatioPeriod,
		"analytics.rotation_momentum_period": a.RotationMomentumPeriod,
		"analytics.rotation_trail":           a.RotationTrail,
		"analytics.concurrency":              a.Concurrency,
	}
	for name, v := range periods {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if a.TrendPeriod <= 1 {
		return fmt.Errorf("analytics.trend_period must be greater than 1")
	}
	for _, p := range append(append([]int{}, a.SMAPeriods...), a.EMAPeriods...) {
		if p <= 0 {
			return fmt.Errorf("analytics moving average periods must be positive, got %d", p)
		}
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	for name, spec := range map[string]string{"schedule.daily_cron": c.Schedule.DailyCron, "schedule.weekly_cron": c.Schedule.WeeklyCron} {
		if _, err := cronParser.Parse(spec); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
