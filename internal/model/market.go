package model

import "time"

// Candle represents a single kline bar from the data provider.
type Candle struct {
	OpenTime  time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime time.Time
	Trades    int64
}

// Reading is one computed RSI observation. The monitor keeps only the
// most recent one in memory; history goes to the recorder.
type Reading struct {
	Value          float64 // RSI in [0,100], rounded to 2 decimals
	Timestamp      time.Time
	ReferencePrice float64 // close of the latest candle in the window
}
