// Package data downloads daily OHLCV history and caches it on disk so
// repeated backtests do not refetch the same series.
package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/backtester/market"
)

const defaultBase = "https://stooq.com/q/d/l"

// Fetcher downloads daily bar CSVs into CacheDir. A cached file is reused
// as-is; delete it to force a refetch.
type Fetcher struct {
	BaseURL  string
	CacheDir string
	Client   *http.Client

	// Polite delay between requests within FetchAll workers.
	Sleep time.Duration
}

func NewFetcher(cacheDir string) *Fetcher {
	return &Fetcher{
		BaseURL:  defaultBase,
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: 45 * time.Second},
		Sleep:    50 * time.Millisecond,
	}
}

func (f *Fetcher) url(symbol string) string {
	return fmt.Sprintf("%s/?s=%s&i=d", strings.TrimRight(f.BaseURL, "/"), strings.ToLower(symbol))
}

func (f *Fetcher) cachePath(symbol string) string {
	return filepath.Join(f.CacheDir, strings.ToUpper(symbol)+"_d.csv")
}

// Fetch returns the daily series for symbol, downloading it if there is no
// cached copy.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) (*market.Series, error) {
	dst := f.cachePath(symbol)
	if _, err := f.downloadIfMissing(ctx, f.url(symbol), dst); err != nil {
		return nil, fmt.Errorf("data: fetch %s: %w", symbol, err)
	}
	return market.LoadCSV(dst, strings.ToUpper(symbol))
}

// FetchAll downloads several symbols with a small worker pool and returns the
// series keyed by upper-case symbol. Symbols that fail are reported together
// after all workers finish.
func (f *Fetcher) FetchAll(ctx context.Context, symbols []string, workers int) (map[string]*market.Series, error) {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	out := make(map[string]*market.Series, len(symbols))
	var errs []error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				time.Sleep(f.Sleep)
				s, err := f.Fetch(ctx, sym)
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					out[strings.ToUpper(sym)] = s
				}
				mu.Unlock()
			}
		}()
	}

	for _, sym := range symbols {
		jobs <- sym
	}
	close(jobs)
	wg.Wait()

	if len(errs) > 0 {
		return out, fmt.Errorf("data: %d of %d downloads failed: %v", len(errs), len(symbols), errs[0])
	}
	return out, nil
}

func (f *Fetcher) downloadIfMissing(ctx context.Context, url, dst string) (downloaded bool, err error) {
	if st, err := os.Stat(dst); err == nil && st.Size() > 0 {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, err
	}

	tmp := dst + ".part"
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", "backtester-data/1.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("http status %d", resp.StatusCode)
	}

	out, err := os.Create(tmp)
	if err != nil {
		return false, err
	}
	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		_ = os.Remove(tmp)
		return false, copyErr
	}
	if closeErr != nil {
		_ = os.Remove(tmp)
		return false, closeErr
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	return true, nil
}
