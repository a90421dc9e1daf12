package cmd

import (
	"fmt"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/sim"
	"github.com/rustyeddy/backtester/stats"
	"github.com/rustyeddy/backtester/strategies"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every registered strategy over the same data",
	Long: `Compare backtests every registered strategy (with default parameters)
against the same daily bar CSV and prints a table ranked by total return.

Example:
  backtester compare --csv data/spy.csv --symbol SPY`,
	RunE: runCompare,
}

var (
	compareCSVPath string
	compareSymbol  string
	compareCapital float64
)

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareCSVPath, "csv", "c", "", "path to daily bar CSV (required)")
	compareCmd.Flags().StringVar(&compareSymbol, "symbol", "SPY", "instrument symbol")
	compareCmd.Flags().Float64VarP(&compareCapital, "capital", "b", 100_000, "starting cash")
	compareCmd.MarkFlagRequired("csv")
}

type compareRow struct {
	strategy string
	report   *stats.Report
	err      error
}

func runCompare(cmd *cobra.Command, args []string) error {
	series, err := market.LoadCSV(compareCSVPath, compareSymbol)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	names := strategies.Names()
	rows := make([]compareRow, len(names))

	// The series is immutable and each engine run is independent, so every
	// strategy can run on its own goroutine.
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			rows[i] = compareOne(series, name, compareCapital)
		}(i, name)
	}
	wg.Wait()

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i], rows[j]
		if (ri.err == nil) != (rj.err == nil) {
			return ri.err == nil
		}
		if ri.err != nil {
			return false
		}
		return ri.report.TotalReturn > rj.report.TotalReturn
	})

	fmt.Printf("Compared %d strategies on %s (%d bars)\n\n", len(names), series.Symbol, series.Len())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tRETURN\tANNUALIZED\tSHARPE\tMAX DD\tTRADES")
	for _, row := range rows {
		if row.err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\n", row.strategy, row.err)
			continue
		}
		r := row.report
		fmt.Fprintf(w, "%s\t%.2f%%\t%.2f%%\t%.3f\t%.2f%%\t%d\n",
			row.strategy, r.TotalReturn*100, r.AnnualizedReturn*100, r.Sharpe, r.MaxDrawdown*100, r.TotalTrades)
	}
	return w.Flush()
}

func compareOne(series *market.Series, name string, capital float64) compareRow {
	row := compareRow{strategy: name}

	strat, err := strategies.ByName(name)
	if err != nil {
		row.err = err
		return row
	}

	signals, err := strat.Signals(series)
	if err != nil {
		row.err = err
		return row
	}

	res, err := sim.New(sim.Config{InitialCapital: capital}).Run(series, signals)
	if err != nil {
		row.err = err
		return row
	}

	row.report, row.err = stats.NewAnalyzer().Analyze(res, capital)
	return row
}
