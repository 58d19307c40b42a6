package recorder

import "time"

// ReadingRow is one monitor-cycle RSI observation.
type ReadingRow struct {
	Timestamp time.Time
	RSI       float64
	Price     float64
}

// AlertRow records one delivered alert.
type AlertRow struct {
	Timestamp    time.Time
	ChatID       int64
	RSI          float64
	Price        float64
	Kind         string // "OVERSOLD" or "OVERBOUGHT"
	Destinations int    // secondary destinations attempted
	Failures     int    // secondary destinations that failed
}

// Recorder persists indicator and alert history for later analysis.
// Subscriber configuration is never persisted.
type Recorder interface {
	RecordReading(row *ReadingRow) error
	RecordAlert(row *AlertRow) error
	Close() error
}
