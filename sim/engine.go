package sim

import (
	"fmt"
	"time"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

// Config holds the engine parameters.
type Config struct {
	InitialCapital float64
}

// Result is everything one simulation run produces. Trades holds closed
// round trips only; a position still open at the end of the series is in
// Open. Snapshots has exactly one entry per bar, in bar order.
type Result struct {
	Trades    []Trade
	Snapshots []Snapshot
	Open      *OpenPosition
	Skipped   []SkippedSignal
}

// FinalValue returns the portfolio value at the last bar.
func (r *Result) FinalValue() float64 {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return r.Snapshots[len(r.Snapshots)-1].TotalValue
}

// Engine simulates a single-instrument, one-position-at-a-time, long-only
// portfolio over a daily bar series:
//
//   - entries and exits fill at the close of the signal bar
//   - entries buy floor(cash/close) whole shares (full-capital sizing)
//   - an exit returns the whole position to cash
//   - no fees, slippage, margin, or partial sizing
//
// Each bar depends only on state carried from the prior bar, so a run is
// strictly sequential. An Engine holds no mutable state between runs;
// concurrent Run calls on the same Engine over the same (immutable) series
// are safe.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// position is transient run state; it exists only while long.
type position struct {
	entryDate   time.Time
	entryPrice  float64
	shares      int64
	entryReason string
}

// Run walks the series in date order, applying one signal per bar.
//
// Flag precedence per bar: while long an exit flag wins over a same-bar
// entry flag (no same-bar churn); while flat an entry flag wins. Validation
// failures abort before any bar is processed so a Result is never partial.
func (e *Engine) Run(s *market.Series, signals []strategies.Signal) (*Result, error) {
	if e.cfg.InitialCapital <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCapital, e.cfg.InitialCapital)
	}
	if err := checkAlignment(s, signals); err != nil {
		return nil, err
	}

	cash := e.cfg.InitialCapital
	long := false
	var pos position
	peak := 0.0

	res := &Result{
		Snapshots: make([]Snapshot, 0, s.Len()),
	}

	for i, bar := range s.Bars {
		sig := signals[i]

		switch {
		case long && sig.Exit:
			proceeds := float64(pos.shares) * bar.Close
			cash += proceeds
			res.Trades = append(res.Trades, Trade{
				EntryDate:   pos.entryDate,
				EntryPrice:  pos.entryPrice,
				ExitDate:    bar.Date,
				ExitPrice:   bar.Close,
				Shares:      pos.shares,
				PnL:         float64(pos.shares) * (bar.Close - pos.entryPrice),
				PnLPercent:  (bar.Close - pos.entryPrice) / pos.entryPrice,
				HoldingDays: int(bar.Date.Sub(pos.entryDate).Hours() / 24),
				EntryReason: pos.entryReason,
				ExitReason:  sig.Reason,
			})
			long = false
			pos = position{}

		case !long && sig.Enter:
			shares := int64(cash / bar.Close)
			if shares == 0 {
				// cash cannot buy one share: stay flat, record for diagnostics
				res.Skipped = append(res.Skipped, SkippedSignal{
					Date:  bar.Date,
					Close: bar.Close,
					Cash:  cash,
				})
				break
			}
			cash -= float64(shares) * bar.Close
			pos = position{
				entryDate:   bar.Date,
				entryPrice:  bar.Close,
				shares:      shares,
				entryReason: sig.Reason,
			}
			long = true
		}

		positionValue := 0.0
		if long {
			positionValue = float64(pos.shares) * bar.Close
		}
		total := cash + positionValue
		if total > peak {
			peak = total
		}
		drawdown := 0.0
		if peak > 0 {
			drawdown = (peak - total) / peak
		}
		res.Snapshots = append(res.Snapshots, Snapshot{
			Date:          bar.Date,
			Cash:          cash,
			PositionValue: positionValue,
			TotalValue:    total,
			Drawdown:      drawdown,
		})
	}

	if long {
		last := s.Bars[s.Len()-1]
		res.Open = &OpenPosition{
			EntryDate:     pos.entryDate,
			EntryPrice:    pos.entryPrice,
			Shares:        pos.shares,
			LastClose:     last.Close,
			UnrealizedPnL: float64(pos.shares) * (last.Close - pos.entryPrice),
			EntryReason:   pos.entryReason,
		}
	}

	return res, nil
}

func checkAlignment(s *market.Series, signals []strategies.Signal) error {
	if s == nil || s.Len() == 0 {
		return fmt.Errorf("%w: empty price series", ErrInsufficientData)
	}
	if len(signals) != s.Len() {
		return fmt.Errorf("%w: %d signals for %d bars", ErrInsufficientData, len(signals), s.Len())
	}
	for i, bar := range s.Bars {
		if !signals[i].Date.Equal(bar.Date) {
			return fmt.Errorf("%w: signal %d dated %s, bar dated %s",
				ErrInsufficientData, i,
				signals[i].Date.Format("2006-01-02"), bar.Date.Format("2006-01-02"))
		}
	}
	return nil
}
