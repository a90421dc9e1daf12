package strategies

import "github.com/rustyeddy/backtester/market"

// Noop never signals. Useful as a baseline: a run with it should end with
// zero trades and a flat equity curve.
type Noop struct{}

func init() {
	Register("noop", func() Strategy { return Noop{} })
}

func (Noop) Name() string { return "noop" }

func (Noop) Signals(s *market.Series) ([]Signal, error) {
	signals := make([]Signal, s.Len())
	for i, b := range s.Bars {
		signals[i].Date = b.Date
	}
	return signals, nil
}
