package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	snapshotsPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(tradesPath, snapshotsPath)
	assert.NoError(t, err)
	assert.NoError(t, j.Close())

	tradesData, err := os.ReadFile(tradesPath)
	assert.NoError(t, err)
	snapshotsData, err := os.ReadFile(snapshotsPath)
	assert.NoError(t, err)

	tradesReader := csv.NewReader(strings.NewReader(string(tradesData)))
	tradesHeader, err := tradesReader.Read()
	assert.NoError(t, err)

	snapsReader := csv.NewReader(strings.NewReader(string(snapshotsData)))
	snapsHeader, err := snapsReader.Read()
	assert.NoError(t, err)

	wantTrades := []string{"trade_id", "run_id", "symbol", "entry_date", "entry_price", "exit_date", "exit_price", "shares", "pnl", "pnl_pct", "holding_days", "reason"}
	assert.Equal(t, wantTrades, tradesHeader)

	wantSnaps := []string{"run_id", "date", "cash", "position_value", "total_value", "drawdown"}
	assert.Equal(t, wantSnaps, snapsHeader)
}

func TestCSVJournalRecordTrade(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	snapshotsPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(tradesPath, snapshotsPath)
	assert.NoError(t, err)

	entry := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	err = j.RecordTrade(TradeRecord{
		TradeID:     "T1",
		RunID:       "R1",
		Symbol:      "SPY",
		EntryDate:   entry,
		EntryPrice:  9.0,
		ExitDate:    exit,
		ExitPrice:   12.0,
		Shares:      11111,
		PnL:         33333.0,
		PnLPercent:  0.333333,
		HoldingDays: 2,
		Reason:      "BearCross",
	})
	assert.NoError(t, err)

	assert.NoError(t, j.Close())

	tradesData, err := os.ReadFile(tradesPath)
	assert.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(tradesData)))
	_, err = reader.Read() // header
	assert.NoError(t, err)
	row, err := reader.Read()
	assert.NoError(t, err)

	want := []string{
		"T1",
		"R1",
		"SPY",
		"2024-01-02",
		"9.000000",
		"2024-01-04",
		"12.000000",
		"11111",
		"33333.000000",
		"0.333333",
		"2",
		"BearCross",
	}
	assert.Equal(t, want, row)
}

func TestCSVJournalRecordSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	snapshotsPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(tradesPath, snapshotsPath)
	assert.NoError(t, err)

	err = j.RecordSnapshot(SnapshotRecord{
		RunID:         "R1",
		Date:          time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Cash:          1.0,
		PositionValue: 122221.0,
		TotalValue:    122222.0,
		Drawdown:      0.0,
	})
	assert.NoError(t, err)

	assert.NoError(t, j.Close())

	snapshotsData, err := os.ReadFile(snapshotsPath)
	assert.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(snapshotsData)))
	_, err = reader.Read() // header
	assert.NoError(t, err)
	row, err := reader.Read()
	assert.NoError(t, err)

	want := []string{
		"R1",
		"2024-01-03",
		"1.000000",
		"122221.000000",
		"122222.000000",
		"0.000000",
	}
	assert.Equal(t, want, row)
}
