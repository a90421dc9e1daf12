package strategies

import (
	"fmt"

	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/market"
)

// EMACross enters on a bull cross of a fast EMA above a slow EMA and exits
// on the opposite cross.
type EMACross struct {
	FastPeriod int // 50
	SlowPeriod int // 200
}

func init() {
	Register("ema-cross", func() Strategy {
		return &EMACross{FastPeriod: 50, SlowPeriod: 200}
	})
}

func (e *EMACross) Name() string { return "ema-cross" }

func (e *EMACross) Signals(s *market.Series) ([]Signal, error) {
	if e.FastPeriod >= e.SlowPeriod {
		return nil, fmt.Errorf("ema-cross: fast period %d must be below slow period %d", e.FastPeriod, e.SlowPeriod)
	}

	closes := s.Closes()
	fast, err := indicators.EMA(closes, e.FastPeriod)
	if err != nil {
		return nil, fmt.Errorf("ema-cross: %w", err)
	}
	slow, err := indicators.EMA(closes, e.SlowPeriod)
	if err != nil {
		return nil, fmt.Errorf("ema-cross: %w", err)
	}

	signals := make([]Signal, len(closes))
	for i := range closes {
		signals[i].Date = s.Bars[i].Date
		if i == 0 {
			continue
		}

		diff := fast[i] - slow[i]
		lastDiff := fast[i-1] - slow[i-1]

		switch {
		case diff > 0 && lastDiff <= 0:
			signals[i].Enter = true
			signals[i].Reason = "BullCross"
		case diff < 0 && lastDiff >= 0:
			signals[i].Exit = true
			signals[i].Reason = "BearCross"
		}
	}
	return signals, nil
}
