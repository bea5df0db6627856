package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HistoryClient fetches daily closing prices from a Stooq-style CSV export
// endpoint.
type HistoryClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHistoryClient creates a history client. If baseURL is empty, defaults
// to "https://stooq.com".
func NewHistoryClient(baseURL string) *HistoryClient {
	if baseURL == "" {
		baseURL = "https://stooq.com"
	}
	return &HistoryClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchError represents an error response from the history endpoint.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return e.Message
}

// FetchDailyCloses downloads the full daily history for a symbol and returns
// the close column, oldest first.
func (c *HistoryClient) FetchDailyCloses(symbol string) ([]float32, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	u := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", c.BaseURL, url.QueryEscape(symbol))
	log.Printf("[History] Request: GET %s (symbol=%s)", u, symbol)

	start := time.Now()
	resp, err := c.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("[History] Response: %d %s (duration: %v)", resp.StatusCode, resp.Status, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("history endpoint returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	closes, err := parseDailyCSV(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(closes) < 2 {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("history for %q has %d samples; need at least 2", symbol, len(closes)),
		}
	}
	log.Printf("[History] Parsed %d daily closes for %s", len(closes), symbol)
	return closes, nil
}

// parseDailyCSV reads a Date,Open,High,Low,Close[,Volume] export and returns
// the close column in file order.
func parseDailyCSV(r io.Reader) ([]float32, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read history header: %w", err)
	}
	closeCol := -1
	for i, name := range header {
		if name == "Close" {
			closeCol = i
			break
		}
	}
	if closeCol < 0 {
		return nil, fmt.Errorf("history CSV has no Close column (header %v)", header)
	}

	var closes []float32
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history row: %w", err)
		}
		if closeCol >= len(rec) {
			continue
		}
		v, err := strconv.ParseFloat(rec[closeCol], 32)
		if err != nil {
			// Stooq emits "N/D" for untraded days; skip them.
			continue
		}
		closes = append(closes, float32(v))
	}
	return closes, nil
}
