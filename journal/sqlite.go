package journal

import (
	"database/sql"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, symbol, entry_date, entry_price, exit_date, exit_price, shares, pnl, pnl_pct, holding_days, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Symbol, t.EntryDate, t.EntryPrice,
		t.ExitDate, t.ExitPrice, t.Shares, t.PnL, t.PnLPercent, t.HoldingDays, t.Reason,
	)
	return err
}

func (j *SQLiteJournal) RecordSnapshot(s SnapshotRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(run_id, date, cash, position_value, total_value, drawdown)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Date, s.Cash, s.PositionValue, s.TotalValue, s.Drawdown,
	)
	return err
}

// RecordRun stores run metadata and metrics. WinRate and ProfitFactor are
// stored as NULL when absent; an infinite profit factor (no losing trades)
// is also stored as NULL since SQLite has no Inf literal.
func (j *SQLiteJournal) RecordRun(r BacktestRun) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, symbol, start_date, end_date, bars,
		 initial_capital, final_value, total_return_pct, annualized_return_pct,
		 volatility_pct, sharpe, sortino, max_dd_pct,
		 trades, wins, losses, win_rate_pct, profit_factor, skipped_entries)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Symbol, r.Start, r.End, r.Bars,
		r.InitialCapital, r.FinalValue, r.TotalReturnPct, r.AnnualizedPct,
		r.VolatilityPct, r.Sharpe, r.Sortino, r.MaxDDPct,
		r.Trades, r.Wins, r.Losses,
		nullableFinite(r.WinRatePct), nullableFinite(r.ProfitFactor), r.SkippedEntries,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func nullableFinite(v *float64) any {
	if v == nil || math.IsInf(*v, 0) || math.IsNaN(*v) {
		return nil
	}
	return *v
}
