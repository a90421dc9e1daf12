package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

func mkSeries(t *testing.T, closes ...float64) *market.Series {
	t.Helper()

	bars := make([]market.Bar, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = market.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c}
	}
	s, err := market.NewSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

func mkSignals(s *market.Series, entries, exits []int) []strategies.Signal {
	signals := make([]strategies.Signal, s.Len())
	for i, b := range s.Bars {
		signals[i].Date = b.Date
	}
	for _, i := range entries {
		signals[i].Enter = true
		signals[i].Reason = "Entry"
	}
	for _, i := range exits {
		signals[i].Exit = true
		signals[i].Reason = "Exit"
	}
	return signals
}

func TestEngineConcreteScenario(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 9, 11, 12, 8)
	signals := mkSignals(s, []int{1}, []int{3})

	res, err := New(Config{InitialCapital: 100000}).Run(s, signals)
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	tr := res.Trades[0]
	assert.Equal(t, int64(11111), tr.Shares)
	assert.InDelta(t, 9, tr.EntryPrice, 1e-9)
	assert.InDelta(t, 12, tr.ExitPrice, 1e-9)
	assert.InDelta(t, 33333, tr.PnL, 1e-9)
	assert.InDelta(t, 1.0/3.0, tr.PnLPercent, 1e-9)
	assert.Equal(t, 2, tr.HoldingDays)

	require.Len(t, res.Snapshots, 5)
	// after entry: 100000 - 11111*9 = 1 cash, position worth 99999
	assert.InDelta(t, 1, res.Snapshots[1].Cash, 1e-9)
	assert.InDelta(t, 99999, res.Snapshots[1].PositionValue, 1e-9)
	assert.InDelta(t, 100000, res.Snapshots[1].TotalValue, 1e-9)
	// after exit: 1 + 11111*12 = 133333, flat through the final bar
	assert.InDelta(t, 133333, res.Snapshots[3].TotalValue, 1e-9)
	assert.InDelta(t, 133333, res.FinalValue(), 1e-9)

	assert.Nil(t, res.Open)
	assert.Empty(t, res.Skipped)
}

func TestEngineInvalidCapital(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 11)
	signals := mkSignals(s, nil, nil)

	for _, capital := range []float64{0, -100} {
		_, err := New(Config{InitialCapital: capital}).Run(s, signals)
		assert.ErrorIs(t, err, ErrInvalidCapital, "capital %v", capital)
	}
}

func TestEngineMisalignedSignals(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 11, 12)

	// too short
	_, err := New(Config{InitialCapital: 1000}).Run(s, mkSignals(s, nil, nil)[:2])
	assert.ErrorIs(t, err, ErrInsufficientData)

	// right length, wrong date
	signals := mkSignals(s, nil, nil)
	signals[1].Date = signals[1].Date.AddDate(0, 0, 7)
	_, err = New(Config{InitialCapital: 1000}).Run(s, signals)
	assert.ErrorIs(t, err, ErrInsufficientData)

	// empty series
	_, err = New(Config{InitialCapital: 1000}).Run(&market.Series{Symbol: "TEST"}, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEngineNoSignalsStaysFlat(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 12, 8, 14)
	res, err := New(Config{InitialCapital: 5000}).Run(s, mkSignals(s, nil, nil))
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Nil(t, res.Open)
	require.Len(t, res.Snapshots, 4)
	for _, snap := range res.Snapshots {
		assert.InDelta(t, 5000, snap.TotalValue, 1e-9)
		assert.Zero(t, snap.PositionValue)
		assert.Zero(t, snap.Drawdown)
	}
}

func TestEngineSkipsUnaffordableEntry(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 10, 10)
	res, err := New(Config{InitialCapital: 5}).Run(s, mkSignals(s, []int{1}, nil))
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Nil(t, res.Open)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, s.Bars[1].Date, res.Skipped[0].Date)
	assert.InDelta(t, 5, res.Skipped[0].Cash, 1e-9)
	// portfolio stays all cash
	assert.InDelta(t, 5, res.FinalValue(), 1e-9)
}

func TestEngineOpenPositionAtEnd(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 20, 25)
	res, err := New(Config{InitialCapital: 100}).Run(s, mkSignals(s, []int{0}, nil))
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	require.NotNil(t, res.Open)
	assert.Equal(t, int64(10), res.Open.Shares)
	assert.InDelta(t, 10, res.Open.EntryPrice, 1e-9)
	assert.InDelta(t, 25, res.Open.LastClose, 1e-9)
	assert.InDelta(t, 150, res.Open.UnrealizedPnL, 1e-9)
	// snapshots still value the open position mark-to-market
	assert.InDelta(t, 250, res.FinalValue(), 1e-9)
}

func TestEngineExitWinsWhileLong(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 10, 12)
	signals := mkSignals(s, []int{0, 2}, []int{2}) // bar 2 has both flags

	res, err := New(Config{InitialCapital: 100}).Run(s, signals)
	require.NoError(t, err)

	// the position closes on bar 2 and is not re-entered the same bar
	require.Len(t, res.Trades, 1)
	assert.Equal(t, s.Bars[2].Date, res.Trades[0].ExitDate)
	assert.Nil(t, res.Open)
}

func TestEngineEntryWinsWhileFlat(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 10, 12)
	signals := mkSignals(s, []int{1}, []int{1}) // both flags while flat

	res, err := New(Config{InitialCapital: 100}).Run(s, signals)
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	require.NotNil(t, res.Open)
	assert.Equal(t, s.Bars[1].Date, res.Open.EntryDate)
}

func TestEngineCashConservation(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 9, 11, 12, 8, 13, 7, 15, 16, 14)
	signals := mkSignals(s, []int{1, 4, 8}, []int{3, 6})

	res, err := New(Config{InitialCapital: 10000}).Run(s, signals)
	require.NoError(t, err)

	for i, snap := range res.Snapshots {
		assert.GreaterOrEqual(t, snap.Cash, 0.0, "negative cash at bar %d", i)
		assert.InDelta(t, snap.TotalValue, snap.Cash+snap.PositionValue, 1e-9, "bar %d", i)
		assert.GreaterOrEqual(t, snap.Drawdown, 0.0, "bar %d", i)
		assert.LessOrEqual(t, snap.Drawdown, 1.0, "bar %d", i)
	}

	// trades are chronological and non-overlapping
	for i := 1; i < len(res.Trades); i++ {
		assert.True(t, res.Trades[i].EntryDate.After(res.Trades[i-1].ExitDate) ||
			res.Trades[i].EntryDate.Equal(res.Trades[i-1].ExitDate))
	}
	for _, tr := range res.Trades {
		assert.True(t, tr.ExitDate.After(tr.EntryDate))
	}
}

func TestEngineIdempotent(t *testing.T) {
	t.Parallel()

	s := mkSeries(t, 10, 9, 11, 12, 8, 13)
	signals := mkSignals(s, []int{1}, []int{3})
	e := New(Config{InitialCapital: 100000})

	first, err := e.Run(s, signals)
	require.NoError(t, err)
	second, err := e.Run(s, signals)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngineDrawdown(t *testing.T) {
	t.Parallel()

	// buy and hold through a peak: 100 -> 200 -> 150
	s := mkSeries(t, 10, 20, 15)
	res, err := New(Config{InitialCapital: 100}).Run(s, mkSignals(s, []int{0}, nil))
	require.NoError(t, err)

	require.Len(t, res.Snapshots, 3)
	assert.Zero(t, res.Snapshots[0].Drawdown)
	assert.Zero(t, res.Snapshots[1].Drawdown)
	assert.InDelta(t, 0.25, res.Snapshots[2].Drawdown, 1e-9)
}

// A run over a truncated series must reproduce the full run's snapshots and
// closed trades up to the cutoff, for a real strategy end to end.
func TestEngineTruncatedSeriesPrefix(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 150)
	for i := range closes {
		closes[i] = 100 + 12*math.Sin(float64(i)/9) + float64(i)*0.4
	}
	full := mkSeries(t, closes...)

	strat, err := strategies.ByName("ema-cross")
	require.NoError(t, err)
	fullSignals, err := strat.Signals(full)
	require.NoError(t, err)

	e := New(Config{InitialCapital: 100000})
	fullRes, err := e.Run(full, fullSignals)
	require.NoError(t, err)

	for _, cut := range []int{40, 80, 120} {
		cutoff := full.Bars[cut-1].Date
		truncated := full.TruncateAfter(cutoff)
		require.Equal(t, cut, truncated.Len())

		strat2, err := strategies.ByName("ema-cross")
		require.NoError(t, err)
		signals, err := strat2.Signals(truncated)
		require.NoError(t, err)

		res, err := e.Run(truncated, signals)
		require.NoError(t, err)

		assert.Equal(t, fullRes.Snapshots[:cut], res.Snapshots, "snapshot prefix mismatch at cut %d", cut)

		var wantTrades []Trade
		for _, tr := range fullRes.Trades {
			if !tr.ExitDate.After(cutoff) {
				wantTrades = append(wantTrades, tr)
			}
		}
		assert.Equal(t, wantTrades, res.Trades, "trade prefix mismatch at cut %d", cut)
	}
}
