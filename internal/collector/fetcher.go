package collector

import (
	"errors"

	"RSISentinel/internal/model"
)

// ErrDataUnavailable means the provider was unreachable or returned an
// unusable payload. The monitor treats it as a skippable cycle failure.
var ErrDataUnavailable = errors.New("market data unavailable")

// Fetcher defines the interface for fetching kline data.
type Fetcher interface {
	FetchKlines(symbol, interval string, limit int) ([]model.Candle, error)
	Name() string
}
