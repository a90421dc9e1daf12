// Package journal persists backtest runs: closed trades, daily portfolio
// snapshots, and run-level metrics. CSV and SQLite backends are provided.
package journal

import (
	"time"

	"github.com/rustyeddy/backtester/pkg/id"
	"github.com/rustyeddy/backtester/sim"
)

// TradeRecord mirrors one closed trade as stored.
type TradeRecord struct {
	TradeID     string
	RunID       string
	Symbol      string
	EntryDate   time.Time
	EntryPrice  float64
	ExitDate    time.Time
	ExitPrice   float64
	Shares      int64
	PnL         float64
	PnLPercent  float64
	HoldingDays int
	Reason      string
}

// SnapshotRecord mirrors one daily portfolio snapshot as stored.
type SnapshotRecord struct {
	RunID         string
	Date          time.Time
	Cash          float64
	PositionValue float64
	TotalValue    float64
	Drawdown      float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSnapshot(SnapshotRecord) error
	Close() error
}

// RecordResult writes every closed trade and snapshot of a simulation result
// under runID. Trade IDs are fresh ULIDs, so records sort by creation time.
func RecordResult(j Journal, runID, symbol string, res *sim.Result) error {
	for _, tr := range res.Trades {
		rec := TradeRecord{
			TradeID:     id.New(),
			RunID:       runID,
			Symbol:      symbol,
			EntryDate:   tr.EntryDate,
			EntryPrice:  tr.EntryPrice,
			ExitDate:    tr.ExitDate,
			ExitPrice:   tr.ExitPrice,
			Shares:      tr.Shares,
			PnL:         tr.PnL,
			PnLPercent:  tr.PnLPercent,
			HoldingDays: tr.HoldingDays,
			Reason:      tr.ExitReason,
		}
		if err := j.RecordTrade(rec); err != nil {
			return err
		}
	}

	for _, snap := range res.Snapshots {
		rec := SnapshotRecord{
			RunID:         runID,
			Date:          snap.Date,
			Cash:          snap.Cash,
			PositionValue: snap.PositionValue,
			TotalValue:    snap.TotalValue,
			Drawdown:      snap.Drawdown,
		}
		if err := j.RecordSnapshot(rec); err != nil {
			return err
		}
	}
	return nil
}
