package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	trades *csv.Writer
	snaps  *csv.Writer
	tf, sf *os.File
}

func NewCSV(tradesPath, snapshotsPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{"trade_id", "run_id", "symbol", "entry_date", "entry_price", "exit_date", "exit_price", "shares", "pnl", "pnl_pct", "holding_days", "reason"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"run_id", "date", "cash", "position_value", "total_value", "drawdown"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, sw, tf, sf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Symbol,
		t.EntryDate.Format(time.DateOnly),
		f(t.EntryPrice),
		t.ExitDate.Format(time.DateOnly),
		f(t.ExitPrice),
		strconv.FormatInt(t.Shares, 10),
		f(t.PnL),
		f(t.PnLPercent),
		strconv.Itoa(t.HoldingDays),
		t.Reason,
	})
	if err != nil {
		return err
	}

	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordSnapshot(s SnapshotRecord) error {
	err := j.snaps.Write([]string{
		s.RunID,
		s.Date.Format(time.DateOnly),
		f(s.Cash),
		f(s.PositionValue),
		f(s.TotalValue),
		f(s.Drawdown),
	})
	if err != nil {
		return err
	}

	j.snaps.Flush()
	return j.snaps.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.snaps.Flush()
	if err := j.snaps.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
