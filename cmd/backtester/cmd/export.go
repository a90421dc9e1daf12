package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a journaled run as an org-mode summary",
	Long: `Export reads a run from the SQLite journal and writes its metrics as an
org-mode heading with a properties drawer, ready to refile into a research
notebook.

Example:
  backtester export 01J0ABCXYZ --db backtester.sqlite --output runs.org`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportDBPath string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDBPath, "db", "d", "./backtester.sqlite", "path to SQLite journal DB")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "backtest.org", "org file to write")
}

func runExport(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(exportDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("load run: %w", err)
	}

	trades, err := j.ListTradesByRun(run.RunID)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	for _, tr := range trades {
		run.Notes = append(run.Notes, fmt.Sprintf("%s %d sh %s .. %s P/L %.2f (%s)",
			tr.Symbol, tr.Shares,
			tr.EntryDate.Format("2006-01-02"), tr.ExitDate.Format("2006-01-02"),
			tr.PnL, tr.Reason))
	}

	run.OrgPath = exportOutput
	if err := run.WriteOrg(); err != nil {
		return fmt.Errorf("write org: %w", err)
	}

	fmt.Printf("Wrote run %s to %s\n", run.RunID, exportOutput)
	return nil
}
