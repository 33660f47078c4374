package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Scanner struct {
		Strategy string `yaml:"strategy"` // most_active | gainers | losers | mixed | static
		Limit    int    `yaml:"limit"`
		Cron     string `yaml:"cron"`
	} `yaml:"scanner"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
	} `yaml:"rate_limit"`
	Analysis Analysis `yaml:"analysis"`
	Proxy    string   `yaml:"proxy"`
}

// Analysis holds every tunable indicator window and threshold. It is
// copied into the analyzer at construction; mutating the analyzer's copy
// between calls is the only supported way to change behavior.
type Analysis struct {
	ShortMovingAverage int     `yaml:"short_moving_average"`
	LongMovingAverage  int     `yaml:"long_moving_average"`
	RSIPeriod          int     `yaml:"rsi_period"`
	RSIOversold        float64 `yaml:"rsi_oversold"`
	RSIOverbought      float64 `yaml:"rsi_overbought"`
	MACDFast           int     `yaml:"macd_fast"`
	MACDSlow           int     `yaml:"macd_slow"`
	MACDSignal         int     `yaml:"macd_signal"`
	BollingerPeriod    int     `yaml:"bollinger_period"`
	BollingerStdDev    float64 `yaml:"bollinger_std_dev"`
	ATRPeriod          int     `yaml:"atr_period"`
	VolumePeriod       int     `yaml:"volume_period"`
	CacheTTLSeconds    int     `yaml:"cache_ttl"`
	MaxRetryAttempts   int     `yaml:"max_retry_attempts"`
	RetryDelayMillis   int     `yaml:"retry_delay_ms"`
	MaxRetryDelayMs    int     `yaml:"max_retry_delay_ms"`
}

// DefaultAnalysis returns the default analysis parameters.
func DefaultAnalysis() Analysis {
	return Analysis{
		ShortMovingAverage: 50,
		LongMovingAverage:  200,
		RSIPeriod:          14,
		RSIOversold:        30,
		RSIOverbought:      70,
		MACDFast:           12,
		MACDSlow:           26,
		MACDSignal:         9,
		BollingerPeriod:    20,
		BollingerStdDev:    2,
		ATRPeriod:          14,
		VolumePeriod:       20,
		CacheTTLSeconds:    300,
		MaxRetryAttempts:   3,
		RetryDelayMillis:   1000,
		MaxRetryDelayMs:    5000,
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Analysis: DefaultAnalysis()}

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
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TICKER_STRATEGY"); v != "" {
		cfg.Scanner.Strategy = v
	}
	if v := os.Getenv("SCANNER_CRON"); v != "" {
		cfg.Scanner.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.CacheTTLSeconds = ttl
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Scanner.Strategy == "" {
		cfg.Scanner.Strategy = "most_active"
	}
	if cfg.Scanner.Limit == 0 {
		cfg.Scanner.Limit = 20
	}
	if cfg.Scanner.Cron == "" {
		cfg.Scanner.Cron = "0 0 * * * *"
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 100
	}
	applyAnalysisDefaults(&cfg.Analysis)

	return cfg, nil
}

func applyAnalysisDefaults(a *Analysis) {
	def := DefaultAnalysis()
	if a.ShortMovingAverage == 0 {
		a.ShortMovingAverage = def.ShortMovingAverage
	}
	if a.LongMovingAverage == 0 {
		a.LongMovingAverage = def.LongMovingAverage
	}
	if a.RSIPeriod == 0 {
		a.RSIPeriod = def.RSIPeriod
	}
	if a.RSIOversold == 0 {
		a.RSIOversold = def.RSIOversold
	}
	if a.RSIOverbought == 0 {
		a.RSIOverbought = def.RSIOverbought
	}
	if a.MACDFast == 0 {
		a.MACDFast = def.MACDFast
	}
	if a.MACDSlow == 0 {
		a.MACDSlow = def.MACDSlow
	}
	if a.MACDSignal == 0 {
		a.MACDSignal = def.MACDSignal
	}
	if a.BollingerPeriod == 0 {
		a.BollingerPeriod = def.BollingerPeriod
	}
	if a.BollingerStdDev == 0 {
		a.BollingerStdDev = def.BollingerStdDev
	}
	if a.ATRPeriod == 0 {
		a.ATRPeriod = def.ATRPeriod
	}
	if a.VolumePeriod == 0 {
		a.VolumePeriod = def.VolumePeriod
	}
	if a.CacheTTLSeconds == 0 {
		a.CacheTTLSeconds = def.CacheTTLSeconds
	}
	if a.MaxRetryAttempts == 0 {
		a.MaxRetryAttempts = def.MaxRetryAttempts
	}
	if a.RetryDelayMillis == 0 {
		a.RetryDelayMillis = def.RetryDelayMillis
	}
	if a.MaxRetryDelayMs == 0 {
		a.MaxRetryDelayMs = def.MaxRetryDelayMs
	}
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	switch c.Scanner.Strategy {
	case "most_active", "gainers", "losers", "mixed", "static":
	default:
		return fmt.Errorf("scanner.strategy %q is not one of most_active, gainers, losers, mixed, static", c.Scanner.Strategy)
	}
	if c.Scanner.Limit < 1 || c.Scanner.Limit > 50 {
		return fmt.Errorf("scanner.limit must be between 1 and 50")
	}
	a := c.Analysis
	if a.ShortMovingAverage <= 0 || a.LongMovingAverage <= a.ShortMovingAverage {
		return fmt.Errorf("analysis moving averages must satisfy 0 < short < long")
	}
	if a.MACDFast >= a.MACDSlow {
		return fmt.Errorf("analysis.macd_fast must be smaller than macd_slow")
	}
	if a.MaxRetryAttempts < 1 {
		return fmt.Errorf("analysis.max_retry_attempts must be at least 1")
	}
	return nil
}
