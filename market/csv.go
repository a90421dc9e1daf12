package market

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// LoadCSV reads a daily bar series from a CSV file. The expected row format is
//
//	date,open,high,low,close,volume
//
// with date as 2006-01-02. A header row is allowed; if the header names the
// columns in a different order (e.g. Date,Close,High,Low,Open,Volume exports)
// the order from the header is used. Files ending in .gz or .xz are
// decompressed transparently.
func LoadCSV(path, symbol string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decompress(f, path)
	if err != nil {
		return nil, err
	}

	bars, err := readBars(r)
	if err != nil {
		return nil, fmt.Errorf("market: %s: %w", path, err)
	}
	return NewSeries(symbol, bars)
}

func decompress(f *os.File, path string) (io.Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return gzip.NewReader(f)
	case ".xz":
		return xz.NewReader(f)
	default:
		return f, nil
	}
}

// default column order: date,open,high,low,close,volume
var defaultCols = map[string]int{"date": 0, "open": 1, "high": 2, "low": 3, "close": 4, "volume": 5}

func readBars(r io.Reader) ([]Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols := defaultCols
	var bars []Bar
	sawFirst := false

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if named, ok := headerCols(row); ok {
				cols = named
				continue
			}
		}

		b, err := parseBarRow(row, cols)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}

	return bars, nil
}

// headerCols detects a header row and maps column names to indexes.
func headerCols(row []string) (map[string]int, bool) {
	if len(row) == 0 {
		return nil, false
	}
	if !strings.EqualFold(strings.TrimSpace(row[0]), "date") {
		return nil, false
	}
	cols := make(map[string]int, len(row))
	for i, name := range row {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, want := range []string{"open", "high", "low", "close"} {
		if _, ok := cols[want]; !ok {
			return nil, false
		}
	}
	return cols, true
}

func parseBarRow(row []string, cols map[string]int) (Bar, error) {
	if len(row) < 5 {
		return Bar{}, fmt.Errorf("bad row (need at least date,open,high,low,close): %v", row)
	}

	field := func(name string) (float64, error) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return 0, fmt.Errorf("missing %s column: %v", name, row)
		}
		return strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
	}

	ts := strings.TrimSpace(row[cols["date"]])
	t, err := time.Parse("2006-01-02", ts)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339, ts)
		if err2 != nil {
			return Bar{}, fmt.Errorf("bad date %q: %w", ts, err)
		}
		t = t2
	}

	var b Bar
	b.Date = Day(t)
	if b.Open, err = field("open"); err != nil {
		return Bar{}, err
	}
	if b.High, err = field("high"); err != nil {
		return Bar{}, err
	}
	if b.Low, err = field("low"); err != nil {
		return Bar{}, err
	}
	if b.Close, err = field("close"); err != nil {
		return Bar{}, err
	}
	if i, ok := cols["volume"]; ok && i < len(row) {
		if b.Volume, err = field("volume"); err != nil {
			return Bar{}, err
		}
	}
	return b, nil
}
