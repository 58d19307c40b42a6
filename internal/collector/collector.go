package collector

import (
	"errors"
	"fmt"
	"time"

	"RSISentinel/internal/calculator"
	"RSISentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Candles []model.Candle
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchKlines(_ string, _ string, limit int) ([]model.Candle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		return m.Candles, nil
	}
	return GenerateMockCandles(50000, limit), nil
}

// GenerateMockCandles builds a gently drifting series around basePrice.
func GenerateMockCandles(basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		open := time.Now().Add(-time.Duration(count-i) * time.Minute)
		candles[i] = model.Candle{
			OpenTime:  open,
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1000,
			CloseTime: open.Add(time.Minute),
			Trades:    100,
		}
	}
	return candles
}

// Collector orchestrates data fetching and RSI computation.
type Collector struct {
	Fetcher  Fetcher
	Symbol   string
	Interval string
	Limit    int
	Period   int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol, interval string, limit, period int) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Interval: interval, Limit: limit, Period: period}
}

// Collect fetches recent klines and computes the current RSI reading.
func (c *Collector) Collect() (*model.Reading, error) {
	candles, err := c.Fetcher.FetchKlines(c.Symbol, c.Interval, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	if len(candles) < c.Period+1 {
		return nil, fmt.Errorf("%w: got %d candles, need %d", ErrDataUnavailable, len(candles), c.Period+1)
	}

	closes := make([]float64, len(candles))
	for i, cd := range candles {
		closes[i] = cd.Close
	}

	rsi, err := calculator.ComputeRSI(closes, c.Period)
	if err != nil {
		if errors.Is(err, calculator.ErrInsufficientData) {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		return nil, fmt.Errorf("compute rsi: %w", err)
	}

	return &model.Reading{
		Value:          rsi,
		Timestamp:      time.Now(),
		ReferencePrice: closes[len(closes)-1],
	}, nil
}
