package market

import "time"

// Bar represents one daily OHLCV (Open, High, Low, Close, Volume) price
// observation. Bars are immutable once loaded.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Day truncates t to midnight UTC. All bar dates are normalized with it so
// date equality is a plain == comparison.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
