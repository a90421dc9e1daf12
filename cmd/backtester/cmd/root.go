package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "A daily-bar trading strategy backtester and performance analyzer",
	Long: `Backtester simulates trading strategies against historical daily bars
and reports performance and risk metrics.

It provides tools for:
  - Backtesting long-only strategies with historical daily data
  - Computing return, risk and trade statistics (Sharpe, Sortino, drawdown)
  - Comparing every registered strategy over the same data
  - Journaling runs, trades and equity snapshots to CSV or SQLite
  - Downloading and caching daily bar data

Complete documentation is available at https://github.com/rustyeddy/backtester`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
