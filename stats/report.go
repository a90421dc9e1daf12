package stats

import (
	"fmt"
	"io"
	"math"
)

// WriteReport prints a plain-text performance report.
func WriteReport(w io.Writer, r *Report) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Performance")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Returns")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial Capital:   %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final Value:       %.2f\n", r.FinalValue)
	fmt.Fprintf(w, "Total Return:      %.2f%%\n", r.TotalReturn*100)
	fmt.Fprintf(w, "Annualized Return: %.2f%%\n", r.AnnualizedReturn*100)
	fmt.Fprintf(w, "Bars:              %d\n", r.Bars)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Volatility (ann.): %.2f%%\n", r.Volatility*100)
	fmt.Fprintf(w, "Sharpe Ratio:      %.3f\n", r.Sharpe)
	fmt.Fprintf(w, "Sortino Ratio:     %.3f\n", r.Sortino)
	fmt.Fprintf(w, "Max Drawdown:      %.2f%%\n", r.MaxDrawdown*100)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trades")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Closed Trades:     %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Wins / Losses:     %d / %d\n", r.Wins, r.Losses)
	writePct(w, "Win Rate:          ", r.WinRate)
	writeRatio(w, "Profit Factor:     ", r.ProfitFactor)
	writeAmount(w, "Avg Win:           ", r.AvgWin)
	writeAmount(w, "Avg Loss:          ", r.AvgLoss)
	writeAmount(w, "Largest Win:       ", r.LargestWin)
	writeAmount(w, "Largest Loss:      ", r.LargestLoss)

	if r.SkippedEntries > 0 {
		fmt.Fprintf(w, "Skipped Entries:   %d (cash below one share)\n", r.SkippedEntries)
	}
	if r.OpenUnrealized != nil {
		fmt.Fprintf(w, "Open Position P/L: %.2f (unrealized, excluded above)\n", *r.OpenUnrealized)
	}
	fmt.Fprintln(w)
}

func writePct(w io.Writer, label string, v *float64) {
	if v == nil {
		fmt.Fprintf(w, "%sn/a\n", label)
		return
	}
	fmt.Fprintf(w, "%s%.2f%%\n", label, *v*100)
}

func writeRatio(w io.Writer, label string, v *float64) {
	switch {
	case v == nil:
		fmt.Fprintf(w, "%sn/a\n", label)
	case math.IsInf(*v, 1):
		fmt.Fprintf(w, "%sinf (no losing trades)\n", label)
	default:
		fmt.Fprintf(w, "%s%.2f\n", label, *v)
	}
}

func writeAmount(w io.Writer, label string, v *float64) {
	if v == nil {
		fmt.Fprintf(w, "%sn/a\n", label)
		return
	}
	fmt.Fprintf(w, "%s%.2f\n", label, *v)
}
