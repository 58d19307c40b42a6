package alert

import (
	"time"

	"RSISentinel/internal/model"
)

// DefaultCooldown is the minimum spacing between alerts per subscriber.
const DefaultCooldown = 5 * time.Minute

// Kind classifies which threshold a reading crossed.
type Kind int

const (
	None Kind = iota
	Oversold
	Overbought
)

// ShouldAlert reports whether a fresh reading warrants an alert for the
// subscriber. Rules are evaluated in order: disabled, cooldown,
// threshold membership (boundary inclusive).
func ShouldAlert(cfg model.SubscriberConfig, reading model.Reading, now time.Time, cooldown time.Duration) bool {
	if !cfg.AlertsEnabled {
		return false
	}
	if !cfg.LastAlertAt.IsZero() && now.Sub(cfg.LastAlertAt) < cooldown {
		return false
	}
	return reading.Value <= float64(cfg.Oversold) || reading.Value >= float64(cfg.Overbought)
}

// Classify names the crossed threshold for messaging. The oversold
// branch wins when both thresholds match (possible with crossed
// threshold settings).
func Classify(value float64, cfg model.SubscriberConfig) Kind {
	if value <= float64(cfg.Oversold) {
		return Oversold
	}
	if value >= float64(cfg.Overbought) {
		return Overbought
	}
	return None
}
