package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"RSISentinel/internal/model"
)

// BinanceFetcher implements Fetcher using the Binance spot REST API.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchKlines fetches up to `limit` klines, chronological ascending.
// Binance returns each kline as a positional array:
// [openTime, open, high, low, close, volume, closeTime, quoteVolume, trades, ...].
func (f *BinanceFetcher) FetchKlines(symbol, interval string, limit int) ([]model.Candle, error) {
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(interval), limit)
	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch klines: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: fetch klines: status %d, body: %s", ErrDataUnavailable, resp.StatusCode, string(body))
	}

	var raw [][]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode klines: %v", ErrDataUnavailable, err)
	}

	candles := make([]model.Candle, 0, len(raw))
	for i, row := range raw {
		c, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("%w: kline %d: %v", ErrDataUnavailable, i, err)
		}
		candles = append(candles, c)
	}

	// Ensure chronological order
	sort.Slice(candles, func(i, j int) bool { return candles[i].OpenTime.Before(candles[j].OpenTime) })
	return candles, nil
}

func parseKline(row []json.RawMessage) (model.Candle, error) {
	if len(row) < 9 {
		return model.Candle{}, fmt.Errorf("short kline row: %d fields", len(row))
	}
	var openTime, closeTime, trades int64
	if err := json.Unmarshal(row[0], &openTime); err != nil {
		return model.Candle{}, fmt.Errorf("open time: %v", err)
	}
	if err := json.Unmarshal(row[6], &closeTime); err != nil {
		return model.Candle{}, fmt.Errorf("close time: %v", err)
	}
	if err := json.Unmarshal(row[8], &trades); err != nil {
		return model.Candle{}, fmt.Errorf("trade count: %v", err)
	}

	// Price/volume fields arrive as decimal strings.
	prices := make([]float64, 5)
	for i, idx := range []int{1, 2, 3, 4, 5} {
		var s string
		if err := json.Unmarshal(row[idx], &s); err != nil {
			return model.Candle{}, fmt.Errorf("field %d: %v", idx, err)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("field %d: %v", idx, err)
		}
		prices[i] = v
	}

	return model.Candle{
		OpenTime:  time.UnixMilli(openTime),
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
		Volume:    prices[4],
		CloseTime: time.UnixMilli(closeTime),
		Trades:    trades,
	}, nil
}
