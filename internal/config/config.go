package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"signalcipher-backend/internal/domain"
)

// Config is the full application configuration. It is loaded once at
// startup and treated as immutable for the lifetime of the process, so
// concurrent pipeline runs can share it without locking.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Scanner       ScannerConfig       `yaml:"scanner"`
	Symbols       []string            `yaml:"symbols"`
	Timeframes    []string            `yaml:"timeframes"`
	Indicators    IndicatorParams     `yaml:"indicators"`
	ML            MLConfig            `yaml:"ml"`
	Notifications NotificationsConfig `yaml:"notifications"`

	// DatabaseURL comes from the environment, never from the file.
	DatabaseURL string `yaml:"-"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type ScannerConfig struct {
	// Schedule is a cron spec, e.g. "@every 1m".
	Schedule    string `yaml:"schedule"`
	Concurrency int    `yaml:"concurrency"`
	CandleLimit int    `yaml:"candle_limit"`
}

type MLConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Endpoint string   `yaml:"endpoint"`
	Timeout  Duration `yaml:"timeout"`
}

type NotificationsConfig struct {
	Cooldown Duration `yaml:"cooldown"`
}

// Duration wraps time.Duration so YAML can carry values like "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// IndicatorParams groups the per-indicator settings. Thresholds live next
// to the periods they gate, mirroring the indicators section of config.yaml.
type IndicatorParams struct {
	WaveTrend  WaveTrendParams  `yaml:"wave_trend"`
	MoneyFlow  MoneyFlowParams  `yaml:"money_flow"`
	RSI        RSIParams        `yaml:"rsi"`
	StochRSI   StochRSIParams   `yaml:"stochastic_rsi"`
	Divergence DivergenceParams `yaml:"divergence"`
	MACD       MACDParams       `yaml:"macd"`
}

type WaveTrendParams struct {
	ChannelLength int     `yaml:"channel_length"`
	AverageLength int     `yaml:"average_length"`
	Overbought    float64 `yaml:"overbought"`
	Oversold      float64 `yaml:"oversold"`
}

type MoneyFlowParams struct {
	Period     int     `yaml:"period"`
	Overbought float64 `yaml:"overbought"`
	Oversold   float64 `yaml:"oversold"`
}

type RSIParams struct {
	Period     int     `yaml:"period"`
	Overbought float64 `yaml:"overbought"`
	Oversold   float64 `yaml:"oversold"`
}

type StochRSIParams struct {
	RSIPeriod   int     `yaml:"rsi_period"`
	StochPeriod int     `yaml:"stoch_period"`
	KSmooth     int     `yaml:"k_smooth"`
	DSmooth     int     `yaml:"d_smooth"`
	Overbought  float64 `yaml:"overbought"`
	Oversold    float64 `yaml:"oversold"`
}

type DivergenceParams struct {
	Lookback int `yaml:"lookback"`
}

type MACDParams struct {
	Fast   int `yaml:"fast"`
	Slow   int `yaml:"slow"`
	Signal int `yaml:"signal"`
}

// Default returns the standard Market Cipher B parameter set.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Scanner: ScannerConfig{
			Schedule:    "@every 1m",
			Concurrency: 10,
			CandleLimit: 200,
		},
		Timeframes: []string{"15m", "1h", "4h", "1d"},
		Indicators: IndicatorParams{
			WaveTrend:  WaveTrendParams{ChannelLength: 9, AverageLength: 12, Overbought: 60, Oversold: -60},
			MoneyFlow:  MoneyFlowParams{Period: 60, Overbought: 80, Oversold: 20},
			RSI:        RSIParams{Period: 14, Overbought: 70, Oversold: 30},
			StochRSI:   StochRSIParams{RSIPeriod: 14, StochPeriod: 14, KSmooth: 3, DSmooth: 3, Overbought: 80, Oversold: 20},
			Divergence: DivergenceParams{Lookback: 14},
			MACD:       MACDParams{Fast: 12, Slow: 26, Signal: 9},
		},
		ML:            MLConfig{Timeout: Duration(2 * time.Second)},
		Notifications: NotificationsConfig{Cooldown: Duration(5 * time.Minute)},
	}
}

// Load reads the YAML config file, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects malformed parameters up front; the pipeline never
// silently defaults a bad value.
func (c Config) Validate() error {
	if err := c.Indicators.Validate(); err != nil {
		return err
	}
	if c.Scanner.Concurrency <= 0 {
		return &domain.InvalidParameterError{Param: "scanner.concurrency", Reason: "must be positive"}
	}
	if c.Scanner.CandleLimit <= 0 {
		return &domain.InvalidParameterError{Param: "scanner.candle_limit", Reason: "must be positive"}
	}
	if len(c.Timeframes) == 0 {
		return &domain.InvalidParameterError{Param: "timeframes", Reason: "at least one timeframe required"}
	}
	return nil
}

// Validate checks every indicator parameter.
func (p IndicatorParams) Validate() error {
	checks := []struct {
		name string
		val  int
	}{
		{"wave_trend.channel_length", p.WaveTrend.ChannelLength},
		{"wave_trend.average_length", p.WaveTrend.AverageLength},
		{"money_flow.period", p.MoneyFlow.Period},
		{"rsi.period", p.RSI.Period},
		{"stochastic_rsi.rsi_period", p.StochRSI.RSIPeriod},
		{"stochastic_rsi.stoch_period", p.StochRSI.StochPeriod},
		{"stochastic_rsi.k_smooth", p.StochRSI.KSmooth},
		{"stochastic_rsi.d_smooth", p.StochRSI.DSmooth},
		{"divergence.lookback", p.Divergence.Lookback},
		{"macd.fast", p.MACD.Fast},
		{"macd.slow", p.MACD.Slow},
		{"macd.signal", p.MACD.Signal},
	}
	for _, c := range checks {
		if c.val <= 0 {
			return &domain.InvalidParameterError{Param: c.name, Reason: "must be positive"}
		}
	}
	if p.WaveTrend.Oversold >= p.WaveTrend.Overbought {
		return &domain.InvalidParameterError{Param: "wave_trend", Reason: "oversold must be below overbought"}
	}
	if p.MoneyFlow.Oversold >= p.MoneyFlow.Overbought {
		return &domain.InvalidParameterError{Param: "money_flow", Reason: "oversold must be below overbought"}
	}
	if p.RSI.Oversold >= p.RSI.Overbought {
		return &domain.InvalidParameterError{Param: "rsi", Reason: "oversold must be below overbought"}
	}
	if p.StochRSI.Oversold >= p.StochRSI.Overbought {
		return &domain.InvalidParameterError{Param: "stochastic_rsi", Reason: "oversold must be below overbought"}
	}
	return nil
}
