package stats

import (
	"fmt"
	"math"

	"github.com/rustyeddy/backtester/sim"
)

// TradingDaysPerYear is the bar count used to annualize daily statistics.
const TradingDaysPerYear = 252

// Report is the read-only metrics summary of one simulation run.
//
// Return and risk fields come from the snapshot series and are always
// populated. Trade fields come from closed trades only; pointer fields are
// nil when the underlying subset is empty (no trades, no winners, no
// losers) rather than zero or NaN. AvgLoss and LargestLoss are magnitudes.
type Report struct {
	InitialCapital float64
	FinalValue     float64
	Bars           int

	TotalReturn      float64 // fractional, FinalValue/InitialCapital - 1
	AnnualizedReturn float64
	Volatility       float64 // annualized stdev of daily returns
	Sharpe           float64 // 0 when volatility is 0
	Sortino          float64 // 0 when there is no downside deviation
	MaxDrawdown      float64 // fractional, in [0, 1]

	TotalTrades int
	Wins        int
	Losses      int

	WinRate      *float64 // fraction of closed trades with positive PnL
	ProfitFactor *float64 // gross profit / gross loss; +Inf with wins and no losses
	AvgWin       *float64
	AvgLoss      *float64
	LargestWin   *float64
	LargestLoss  *float64

	SkippedEntries int
	OpenUnrealized *float64 // set when a position was still open at the end
}

// Analyzer computes a Report from a simulation result. It is a pure
// function of its inputs: identical inputs produce identical reports.
type Analyzer struct {
	BarsPerYear int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{BarsPerYear: TradingDaysPerYear}
}

// Analyze derives all metrics from the run's snapshots and closed trades.
// It never fails on an empty trade list: a never-entered portfolio has a
// well-defined zero Sharpe and drawdown.
func (a *Analyzer) Analyze(res *sim.Result, initialCapital float64) (*Report, error) {
	if res == nil || len(res.Snapshots) == 0 {
		return nil, fmt.Errorf("stats: no snapshots to analyze")
	}
	if initialCapital <= 0 {
		return nil, fmt.Errorf("stats: initial capital must be positive, got %v", initialCapital)
	}

	barsPerYear := a.BarsPerYear
	if barsPerYear <= 0 {
		barsPerYear = TradingDaysPerYear
	}

	r := &Report{
		InitialCapital: initialCapital,
		FinalValue:     res.FinalValue(),
		Bars:           len(res.Snapshots),
		SkippedEntries: len(res.Skipped),
	}

	r.TotalReturn = r.FinalValue/initialCapital - 1
	r.AnnualizedReturn = math.Pow(1+r.TotalReturn, float64(barsPerYear)/float64(r.Bars)) - 1

	returns := dailyReturns(res.Snapshots)
	mean := meanOf(returns)
	std := stdev(returns)
	annualize := math.Sqrt(float64(barsPerYear))

	r.Volatility = std * annualize
	if std > 0 {
		r.Sharpe = mean / std * annualize
	}

	var downside []float64
	for _, v := range returns {
		if v < 0 {
			downside = append(downside, v)
		}
	}
	if dstd := stdev(downside); dstd > 0 {
		r.Sortino = mean / dstd * annualize
	}

	for _, snap := range res.Snapshots {
		if snap.Drawdown > r.MaxDrawdown {
			r.MaxDrawdown = snap.Drawdown
		}
	}

	a.tradeStats(r, res.Trades)

	if res.Open != nil {
		r.OpenUnrealized = ptr(res.Open.UnrealizedPnL)
	}

	return r, nil
}

func (a *Analyzer) tradeStats(r *Report, trades []sim.Trade) {
	r.TotalTrades = len(trades)
	if len(trades) == 0 {
		return
	}

	var grossProfit, grossLoss float64
	var largestWin, largestLoss float64
	for _, tr := range trades {
		switch {
		case tr.PnL > 0:
			r.Wins++
			grossProfit += tr.PnL
			if tr.PnL > largestWin {
				largestWin = tr.PnL
			}
		case tr.PnL < 0:
			r.Losses++
			grossLoss += -tr.PnL
			if -tr.PnL > largestLoss {
				largestLoss = -tr.PnL
			}
		}
	}

	r.WinRate = ptr(float64(r.Wins) / float64(r.TotalTrades))

	if r.Losses > 0 {
		r.ProfitFactor = ptr(grossProfit / grossLoss)
	} else if r.Wins > 0 {
		r.ProfitFactor = ptr(math.Inf(1))
	}

	if r.Wins > 0 {
		r.AvgWin = ptr(grossProfit / float64(r.Wins))
		r.LargestWin = ptr(largestWin)
	}
	if r.Losses > 0 {
		r.AvgLoss = ptr(grossLoss / float64(r.Losses))
		r.LargestLoss = ptr(largestLoss)
	}
}

// dailyReturns is total-value percentage change per bar; undefined for the
// first bar, so the result has len(snapshots)-1 entries.
func dailyReturns(snaps []sim.Snapshot) []float64 {
	if len(snaps) < 2 {
		return nil
	}
	out := make([]float64, 0, len(snaps)-1)
	for i := 1; i < len(snaps); i++ {
		out = append(out, snaps[i].TotalValue/snaps[i-1].TotalValue-1)
	}
	return out
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev is the sample standard deviation (n-1 denominator); 0 when there
// are fewer than two observations.
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := meanOf(values)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func ptr(v float64) *float64 { return &v }
