package model

import "time"

// Default subscriber settings applied by /start.
const (
	DefaultOversold   = 30
	DefaultOverbought = 70
)

// SubscriberConfig holds one subscriber's alert settings. Owned by the
// registry; callers receive copies.
type SubscriberConfig struct {
	ChatID        int64
	Oversold      int // alert when RSI <= Oversold, 1..99
	Overbought    int // alert when RSI >= Overbought, 1..99
	AlertsEnabled bool
	LastAlertAt   time.Time // zero means never alerted
	Destinations  []string  // extra channels: "@handle" or "-100..." ids, no duplicates
}

// NewSubscriberConfig returns the default configuration for a chat.
func NewSubscriberConfig(chatID int64) SubscriberConfig {
	return SubscriberConfig{
		ChatID:        chatID,
		Oversold:      DefaultOversold,
		Overbought:    DefaultOverbought,
		AlertsEnabled: true,
	}
}
