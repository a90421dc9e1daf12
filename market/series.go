package market

import (
	"fmt"
	"time"
)

// Series is an ordered daily bar series for a single symbol.
// Dates are unique and strictly increasing; the simulation engine and the
// comparison runner read a Series concurrently and never mutate it.
type Series struct {
	Symbol string
	Bars   []Bar
}

// NewSeries validates bars and returns a Series. Bars must be non-empty with
// strictly increasing dates and positive close prices.
func NewSeries(symbol string, bars []Bar) (*Series, error) {
	s := &Series{Symbol: symbol, Bars: bars}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the series invariants.
func (s *Series) Validate() error {
	if len(s.Bars) == 0 {
		return fmt.Errorf("market: series %q has no bars", s.Symbol)
	}
	var prev time.Time
	for i, b := range s.Bars {
		if b.Date != Day(b.Date) {
			return fmt.Errorf("market: bar %d date %s is not midnight UTC", i, b.Date)
		}
		if i > 0 && !b.Date.After(prev) {
			return fmt.Errorf("market: bar %d date %s not after %s", i, b.Date.Format("2006-01-02"), prev.Format("2006-01-02"))
		}
		if b.Close <= 0 {
			return fmt.Errorf("market: bar %d (%s) has non-positive close %v", i, b.Date.Format("2006-01-02"), b.Close)
		}
		prev = b.Date
	}
	return nil
}

func (s *Series) Len() int { return len(s.Bars) }

// Start returns the first bar date.
func (s *Series) Start() time.Time { return s.Bars[0].Date }

// End returns the last bar date.
func (s *Series) End() time.Time { return s.Bars[len(s.Bars)-1].Date }

// Closes returns the close price of every bar, in order.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// TruncateAfter returns a new Series containing only bars dated at or before
// cutoff. The backing bars are shared, not copied; Series is read-only.
func (s *Series) TruncateAfter(cutoff time.Time) *Series {
	cutoff = Day(cutoff)
	n := 0
	for n < len(s.Bars) && !s.Bars[n].Date.After(cutoff) {
		n++
	}
	return &Series{Symbol: s.Symbol, Bars: s.Bars[:n]}
}
