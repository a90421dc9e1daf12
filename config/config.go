package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete backtest configuration
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig contains the simulated account parameters
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Capital  float64 `json:"capital" yaml:"capital"`
}

// DataConfig locates the daily bar data
type DataConfig struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	CSVFile  string `json:"csv_file,omitempty" yaml:"csv_file,omitempty"`
	FetchURL string `json:"fetch_url,omitempty" yaml:"fetch_url,omitempty"`
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
}

// StrategyConfig selects the strategy and its parameters
type StrategyConfig struct {
	Name        string `json:"name" yaml:"name"`
	FastPeriod  int    `json:"fast_period,omitempty" yaml:"fast_period,omitempty"`
	SlowPeriod  int    `json:"slow_period,omitempty" yaml:"slow_period,omitempty"`
	BandPeriod  int    `json:"band_period,omitempty" yaml:"band_period,omitempty"`
	BandWidth   float64 `json:"band_width,omitempty" yaml:"band_width,omitempty"`
	TrendPeriod int    `json:"trend_period,omitempty" yaml:"trend_period,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SnapshotsFile string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Capital <= 0 {
		return fmt.Errorf("account.capital must be positive")
	}
	if c.Data.Symbol == "" {
		return fmt.Errorf("data.symbol is required")
	}
	if c.Data.CSVFile == "" && c.Data.FetchURL == "" {
		return fmt.Errorf("data.csv_file or data.fetch_url is required")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Strategy.FastPeriod < 0 || c.Strategy.SlowPeriod < 0 {
		return fmt.Errorf("strategy periods must not be negative")
	}
	if c.Strategy.FastPeriod > 0 && c.Strategy.SlowPeriod > 0 && c.Strategy.FastPeriod >= c.Strategy.SlowPeriod {
		return fmt.Errorf("strategy.fast_period must be below slow_period")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SnapshotsFile == "" {
			return fmt.Errorf("journal trades_file and snapshots_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Capital:  100000,
		},
		Data: DataConfig{
			Symbol:   "SPY",
			CSVFile:  "./data/spy.csv",
			CacheDir: "./data",
		},
		Strategy: StrategyConfig{
			Name:       "ema-cross",
			FastPeriod: 50,
			SlowPeriod: 200,
		},
		Journal: JournalConfig{
			Type:          "csv",
			TradesFile:    "./trades.csv",
			SnapshotsFile: "./snapshots.csv",
		},
	}
}
