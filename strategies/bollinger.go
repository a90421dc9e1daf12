package strategies

import (
	"fmt"
	"math"

	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/market"
)

// BollingerBounce enters when price crosses back above the lower Bollinger
// band while above a long moving average (trend filter), and exits when price
// reaches the middle band.
type BollingerBounce struct {
	Period      int     // band window, 20
	Width       float64 // band width in standard deviations, 2
	TrendPeriod int     // long SMA trend filter, 200
}

func init() {
	Register("bollinger-bounce", func() Strategy {
		return &BollingerBounce{Period: 20, Width: 2, TrendPeriod: 200}
	})
}

func (b *BollingerBounce) Name() string { return "bollinger-bounce" }

func (b *BollingerBounce) Signals(s *market.Series) ([]Signal, error) {
	closes := s.Closes()

	bands, err := indicators.Bollinger(closes, b.Period, b.Width)
	if err != nil {
		return nil, fmt.Errorf("bollinger-bounce: %w", err)
	}
	trend, err := indicators.SMA(closes, b.TrendPeriod)
	if err != nil {
		return nil, fmt.Errorf("bollinger-bounce: %w", err)
	}

	signals := make([]Signal, len(closes))
	for i := range closes {
		signals[i].Date = s.Bars[i].Date

		if math.IsNaN(bands.Middle[i]) {
			continue
		}

		// Exit: price back at or above the middle band.
		if closes[i] >= bands.Middle[i] {
			signals[i].Exit = true
			signals[i].Reason = "MiddleBandCross"
		}

		// Entry: cross back above the lower band, in an uptrend.
		if i == 0 || math.IsNaN(bands.Lower[i-1]) || math.IsNaN(trend[i]) {
			continue
		}
		if closes[i-1] < bands.Lower[i-1] && closes[i] > bands.Lower[i] && closes[i] > trend[i] {
			signals[i].Enter = true
			signals[i].Reason = "LowerBandBounce"
		}
	}
	return signals, nil
}
