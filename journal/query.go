package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns one run row by ID.
func (j *SQLiteJournal) GetRun(runID string) (BacktestRun, error) {
	var r BacktestRun
	var winRate, profitFactor sql.NullFloat64

	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, symbol, start_date, end_date, bars,
		       initial_capital, final_value, total_return_pct, annualized_return_pct,
		       volatility_pct, sharpe, sortino, max_dd_pct,
		       trades, wins, losses, win_rate_pct, profit_factor, skipped_entries
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &r.Symbol, &r.Start, &r.End, &r.Bars,
		&r.InitialCapital, &r.FinalValue, &r.TotalReturnPct, &r.AnnualizedPct,
		&r.VolatilityPct, &r.Sharpe, &r.Sortino, &r.MaxDDPct,
		&r.Trades, &r.Wins, &r.Losses, &winRate, &profitFactor, &r.SkippedEntries,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return BacktestRun{}, fmt.Errorf("run %q not found", runID)
		}
		return BacktestRun{}, err
	}

	if winRate.Valid {
		r.WinRatePct = &winRate.Float64
	}
	if profitFactor.Valid {
		r.ProfitFactor = &profitFactor.Float64
	}
	return r, nil
}

// ListTradesByRun returns the closed trades of a run in exit order.
func (j *SQLiteJournal) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, symbol, entry_date, entry_price, exit_date, exit_price, shares, pnl, pnl_pct, holding_days, reason
		FROM trades
		WHERE run_id = ?
		ORDER BY exit_date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.RunID,
			&rec.Symbol,
			&rec.EntryDate,
			&rec.EntryPrice,
			&rec.ExitDate,
			&rec.ExitPrice,
			&rec.Shares,
			&rec.PnL,
			&rec.PnLPercent,
			&rec.HoldingDays,
			&rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSnapshotsByRun returns the daily snapshots of a run in date order.
func (j *SQLiteJournal) ListSnapshotsByRun(runID string) ([]SnapshotRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, cash, position_value, total_value, drawdown
		FROM snapshots
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Date,
			&rec.Cash,
			&rec.PositionValue,
			&rec.TotalValue,
			&rec.Drawdown,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
