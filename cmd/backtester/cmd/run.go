package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/pkg/id"
	"github.com/rustyeddy/backtester/sim"
	"github.com/rustyeddy/backtester/stats"
	"github.com/rustyeddy/backtester/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Backtest one strategy over a daily bar CSV",
	Long: `Run a single backtest: load daily bars from a CSV file, generate signals
with the chosen strategy, simulate the portfolio and print a performance
report.

Example:
  backtester run --csv data/spy.csv --symbol SPY --strategy ema-cross --fast 50 --slow 200`,
	RunE: runRun,
}

var (
	runConfigPath string
	runCSVPath    string
	runSymbol     string
	runCapital    float64
	runStrategy   string

	runFast  int
	runSlow  int
	runBand  int
	runWidth float64
	runTrend int

	runJournalType string
	runDBPath      string
	runTradesFile  string
	runSnapsFile   string
	runOrgPath     string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "config file (YAML or JSON); flags override its values")
	runCmd.Flags().StringVarP(&runCSVPath, "csv", "c", "", "path to daily bar CSV (.csv, .csv.gz or .csv.xz)")
	runCmd.Flags().StringVar(&runSymbol, "symbol", "SPY", "instrument symbol for reports and journaling")
	runCmd.Flags().Float64VarP(&runCapital, "capital", "b", 100_000, "starting cash")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "ema-cross", "strategy name (see 'backtester strategies')")

	runCmd.Flags().IntVar(&runFast, "fast", 0, "ema-cross: fast EMA period")
	runCmd.Flags().IntVar(&runSlow, "slow", 0, "ema-cross: slow EMA period")
	runCmd.Flags().IntVar(&runBand, "band-period", 0, "bollinger-bounce: band window")
	runCmd.Flags().Float64Var(&runWidth, "band-width", 0, "bollinger-bounce: band width in standard deviations")
	runCmd.Flags().IntVar(&runTrend, "trend-period", 0, "bollinger-bounce: trend filter SMA period")

	runCmd.Flags().StringVar(&runJournalType, "journal", "none", "journal backend: none, csv or sqlite")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "./backtester.sqlite", "path to SQLite journal DB")
	runCmd.Flags().StringVar(&runTradesFile, "trades-file", "./trades.csv", "CSV journal: trades output file")
	runCmd.Flags().StringVar(&runSnapsFile, "snapshots-file", "./snapshots.csv", "CSV journal: snapshots output file")
	runCmd.Flags().StringVar(&runOrgPath, "org", "", "also write an org-mode run summary to this file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	series, err := market.LoadCSV(cfg.Data.CSVFile, cfg.Data.Symbol)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	strat, err := buildStrategy(cfg.Strategy)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	fmt.Printf("Backtesting %s on %s (%d bars, %s .. %s)\n\n",
		strat.Name(), series.Symbol, series.Len(),
		series.Start().Format("2006-01-02"), series.End().Format("2006-01-02"))

	signals, err := strat.Signals(series)
	if err != nil {
		return fmt.Errorf("signals: %w", err)
	}

	engine := sim.New(sim.Config{InitialCapital: cfg.Account.Capital})
	res, err := engine.Run(series, signals)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	report, err := stats.NewAnalyzer().Analyze(res, cfg.Account.Capital)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	stats.WriteReport(os.Stdout, report)

	return persistRun(cfg, strat.Name(), series, res, report)
}

// runConfig merges the optional config file with command-line flags. Flags
// that were set explicitly win over file values.
func runConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		cfg.Journal.Type = "none"
	}

	flags := cmd.Flags()
	if flags.Changed("csv") {
		cfg.Data.CSVFile = runCSVPath
	}
	if flags.Changed("symbol") {
		cfg.Data.Symbol = runSymbol
	}
	if flags.Changed("capital") {
		cfg.Account.Capital = runCapital
	}
	if flags.Changed("strategy") {
		cfg.Strategy.Name = runStrategy
	}
	if flags.Changed("fast") {
		cfg.Strategy.FastPeriod = runFast
	}
	if flags.Changed("slow") {
		cfg.Strategy.SlowPeriod = runSlow
	}
	if flags.Changed("band-period") {
		cfg.Strategy.BandPeriod = runBand
	}
	if flags.Changed("band-width") {
		cfg.Strategy.BandWidth = runWidth
	}
	if flags.Changed("trend-period") {
		cfg.Strategy.TrendPeriod = runTrend
	}
	if flags.Changed("journal") {
		cfg.Journal.Type = runJournalType
	}
	if flags.Changed("db") {
		cfg.Journal.DBPath = runDBPath
	}
	if flags.Changed("trades-file") {
		cfg.Journal.TradesFile = runTradesFile
	}
	if flags.Changed("snapshots-file") {
		cfg.Journal.SnapshotsFile = runSnapsFile
	}

	if cfg.Data.CSVFile == "" {
		return nil, fmt.Errorf("no data: provide --csv or a config file with data.csv_file")
	}
	return cfg, nil
}

// buildStrategy returns a strategy instance with defaults from the registry
// and any non-zero parameters from the config applied.
func buildStrategy(sc config.StrategyConfig) (strategies.Strategy, error) {
	strat, err := strategies.ByName(sc.Name)
	if err != nil {
		return nil, err
	}

	switch s := strat.(type) {
	case *strategies.EMACross:
		if sc.FastPeriod > 0 {
			s.FastPeriod = sc.FastPeriod
		}
		if sc.SlowPeriod > 0 {
			s.SlowPeriod = sc.SlowPeriod
		}
	case *strategies.BollingerBounce:
		if sc.BandPeriod > 0 {
			s.Period = sc.BandPeriod
		}
		if sc.BandWidth > 0 {
			s.Width = sc.BandWidth
		}
		if sc.TrendPeriod > 0 {
			s.TrendPeriod = sc.TrendPeriod
		}
	}
	return strat, nil
}

func persistRun(cfg *config.Config, strategyName string, series *market.Series, res *sim.Result, report *stats.Report) error {
	runID := id.New()
	run := journal.NewBacktestRun(runID, strategyName, series.Symbol, series.Start(), series.End(), report)

	switch cfg.Journal.Type {
	case "", "none":

	case "csv":
		j, err := journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.SnapshotsFile)
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer j.Close()

		if err := journal.RecordResult(j, runID, series.Symbol, res); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		fmt.Printf("Journaled run %s to %s, %s\n", runID, cfg.Journal.TradesFile, cfg.Journal.SnapshotsFile)

	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer j.Close()

		if err := j.RecordRun(run); err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
		if err := journal.RecordResult(j, runID, series.Symbol, res); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		fmt.Printf("Journaled run %s to %s\n", runID, cfg.Journal.DBPath)

	default:
		return fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}

	if runOrgPath != "" {
		run.OrgPath = runOrgPath
		if err := run.WriteOrg(); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
		fmt.Printf("Wrote org summary to %s\n", runOrgPath)
	}
	return nil
}
