package sim

import "time"

// Trade is one completed round trip. It is created atomically when a
// position exits and is never modified afterwards. ExitDate is always
// strictly later than EntryDate.
type Trade struct {
	EntryDate   time.Time
	EntryPrice  float64
	ExitDate    time.Time
	ExitPrice   float64
	Shares      int64
	PnL         float64 // Shares * (ExitPrice - EntryPrice)
	PnLPercent  float64 // (ExitPrice - EntryPrice) / EntryPrice
	HoldingDays int
	EntryReason string
	ExitReason  string
}

// OpenPosition summarizes a position still held when the series ends.
// It is reported separately and never appears in the closed-trade list.
type OpenPosition struct {
	EntryDate     time.Time
	EntryPrice    float64
	Shares        int64
	LastClose     float64
	UnrealizedPnL float64
	EntryReason   string
}

// Snapshot is the portfolio valuation at the close of one bar, recorded
// unconditionally whether or not anything traded.
type Snapshot struct {
	Date          time.Time
	Cash          float64
	PositionValue float64 // 0 while flat
	TotalValue    float64 // Cash + PositionValue
	Drawdown      float64 // fractional decline from the running peak TotalValue
}

// SkippedSignal records an entry signal that could not be filled because
// cash was below the price of a single share. It is diagnostic, not an
// error; the simulation stays flat and continues.
type SkippedSignal struct {
	Date  time.Time
	Close float64
	Cash  float64
}
