package journal

import (
	"bytes"
	"math"
	"os"
	"strconv"
	"text/template"
	"time"

	"github.com/rustyeddy/backtester/stats"
)

// BacktestRun mirrors the runs table. Percentage fields are stored as
// percents (12.34 means 12.34%); WinRatePct and ProfitFactor are nil when
// the run closed no trades (or no losing trades, for ProfitFactor).
type BacktestRun struct {
	RunID    string
	Created  time.Time
	Strategy string
	Symbol   string

	Start time.Time
	End   time.Time
	Bars  int

	InitialCapital float64
	FinalValue     float64

	TotalReturnPct float64
	AnnualizedPct  float64
	VolatilityPct  float64
	Sharpe         float64
	Sortino        float64
	MaxDDPct       float64

	Trades         int
	Wins           int
	Losses         int
	WinRatePct     *float64
	ProfitFactor   *float64
	SkippedEntries int

	Notes   []string
	OrgPath string
}

// NewBacktestRun flattens a metrics report into a run row.
func NewBacktestRun(runID, strategy, symbol string, start, end time.Time, r *stats.Report) BacktestRun {
	run := BacktestRun{
		RunID:          runID,
		Created:        time.Now().UTC(),
		Strategy:       strategy,
		Symbol:         symbol,
		Start:          start,
		End:            end,
		Bars:           r.Bars,
		InitialCapital: r.InitialCapital,
		FinalValue:     r.FinalValue,
		TotalReturnPct: r.TotalReturn * 100,
		AnnualizedPct:  r.AnnualizedReturn * 100,
		VolatilityPct:  r.Volatility * 100,
		Sharpe:         r.Sharpe,
		Sortino:        r.Sortino,
		MaxDDPct:       r.MaxDrawdown * 100,
		Trades:         r.TotalTrades,
		Wins:           r.Wins,
		Losses:         r.Losses,
		SkippedEntries: r.SkippedEntries,
	}
	if r.WinRate != nil {
		v := *r.WinRate * 100
		run.WinRatePct = &v
	}
	if r.ProfitFactor != nil && !math.IsInf(*r.ProfitFactor, 0) {
		v := *r.ProfitFactor
		run.ProfitFactor = &v
	}
	return run
}

var backtestOrgFuncs = template.FuncMap{
	"pctOrNA": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return strconv.FormatFloat(*v, 'f', 2, 64) + "%"
	},
	"numOrNA": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return strconv.FormatFloat(*v, 'f', 2, 64)
	},
}

// WriteOrg renders the run as an org-mode block and writes it to
// run.OrgPath.
func (v *BacktestRun) WriteOrg() error {
	t, err := template.New("backtest").Funcs(backtestOrgFuncs).Parse(BacktestOrgTemplate)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, v); err != nil {
		return err
	}
	return os.WriteFile(v.OrgPath, buf.Bytes(), 0644)
}

const BacktestOrgTemplate = `
* BACKTEST: {{.Strategy}} {{.Symbol}} daily
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:STRATEGY:    {{.Strategy}}
:SYMBOL:      {{.Symbol}}
:START_DATE:  {{.Start.Format "2006-01-02"}}
:END_DATE:    {{.End.Format "2006-01-02"}}
:BARS:        {{.Bars}}
:START_CAP:   {{printf "%.2f" .InitialCapital}}
:FINAL_VALUE: {{printf "%.2f" .FinalValue}}
:RETURN_PCT:  {{printf "%.2f" .TotalReturnPct}}
:ANNUAL_PCT:  {{printf "%.2f" .AnnualizedPct}}
:MAX_DD_PCT:  {{printf "%.2f" .MaxDDPct}}
:SHARPE:      {{printf "%.3f" .Sharpe}}
:SORTINO:     {{printf "%.3f" .Sortino}}
:TRADES:      {{.Trades}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:WIN_RATE:    {{pctOrNA .WinRatePct}}
:PROFIT_FAC:  {{numOrNA .ProfitFactor}}
:CREATED:     [{{.Created.Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Total Return:     *{{printf "%.2f" .TotalReturnPct}}%*
- Annualized:       *{{printf "%.2f" .AnnualizedPct}}%*
- Volatility:       *{{printf "%.2f" .VolatilityPct}}%*
- Max Drawdown:     *{{printf "%.2f" .MaxDDPct}}%*
- Sharpe:           *{{printf "%.3f" .Sharpe}}*
- Sortino:          *{{printf "%.3f" .Sortino}}*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{.Losses}} |
| Total   | {{.Trades}} |
{{- if .SkippedEntries }}
| Skipped | {{.SkippedEntries}} |
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
