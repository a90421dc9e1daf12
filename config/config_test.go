package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.InDelta(t, 100000.0, cfg.Account.Capital, 1e-9)
	assert.Equal(t, "ema-cross", cfg.Strategy.Name)
}

func TestRoundTripYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Account.Capital = 50000
	cfg.Strategy.Name = "bollinger-bounce"
	cfg.Strategy.FastPeriod = 0
	cfg.Strategy.SlowPeriod = 0
	cfg.Strategy.BandPeriod = 20
	cfg.Strategy.BandWidth = 2
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.InDelta(t, 50000.0, got.Account.Capital, 1e-9)
	assert.Equal(t, "bollinger-bounce", got.Strategy.Name)
	assert.Equal(t, 20, got.Strategy.BandPeriod)
	assert.InDelta(t, 2.0, got.Strategy.BandWidth, 1e-9)
}

func TestRoundTripJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Journal.Type = "sqlite"
	cfg.Journal.DBPath = "runs.db"
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", got.Journal.Type)
	assert.Equal(t, "runs.db", got.Journal.DBPath)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero capital", func(c *Config) { c.Account.Capital = 0 }, "capital"},
		{"negative capital", func(c *Config) { c.Account.Capital = -100 }, "capital"},
		{"missing symbol", func(c *Config) { c.Data.Symbol = "" }, "symbol"},
		{"missing data source", func(c *Config) { c.Data.CSVFile = ""; c.Data.FetchURL = "" }, "csv_file"},
		{"missing strategy", func(c *Config) { c.Strategy.Name = "" }, "strategy.name"},
		{"fast above slow", func(c *Config) { c.Strategy.FastPeriod = 200; c.Strategy.SlowPeriod = 50 }, "fast_period"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"csv without files", func(c *Config) { c.Journal.TradesFile = "" }, "trades_file"},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.DBPath = "" }, "db_path"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
