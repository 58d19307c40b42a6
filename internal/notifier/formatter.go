package notifier

import (
	"fmt"
	"strings"

	"RSISentinel/internal/alert"
	"RSISentinel/internal/model"
)

// FormatAlert formats a threshold-crossing alert message.
func FormatAlert(symbol string, reading model.Reading, kind alert.Kind, cfg model.SubscriberConfig) string {
	var b strings.Builder
	switch kind {
	case alert.Oversold:
		b.WriteString(fmt.Sprintf("📉 <b>%s oversold</b>\n\n", symbol))
		b.WriteString(fmt.Sprintf("RSI: %.2f (threshold ≤%d)\n", reading.Value, cfg.Oversold))
	case alert.Overbought:
		b.WriteString(fmt.Sprintf("📈 <b>%s overbought</b>\n\n", symbol))
		b.WriteString(fmt.Sprintf("RSI: %.2f (threshold ≥%d)\n", reading.Value, cfg.Overbought))
	}
	b.WriteString(fmt.Sprintf("Price: %.2f\n", reading.ReferencePrice))
	b.WriteString(fmt.Sprintf("Time: %s", reading.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC")))
	return b.String()
}

// FormatStatus formats the /status reply: subscriber config plus the
// latest reading, if one exists yet.
func FormatStatus(symbol string, cfg model.SubscriberConfig, latest *model.Reading) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚙️ <b>%s monitor status</b>\n\n", symbol))
	b.WriteString(fmt.Sprintf("Oversold threshold: %d\n", cfg.Oversold))
	b.WriteString(fmt.Sprintf("Overbought threshold: %d\n", cfg.Overbought))
	b.WriteString(fmt.Sprintf("Alerts: %s\n", onOff(cfg.AlertsEnabled)))
	b.WriteString(fmt.Sprintf("Channels: %d\n", len(cfg.Destinations)))
	if latest != nil {
		b.WriteString(fmt.Sprintf("\nLatest RSI: %.2f @ %.2f\n", latest.Value, latest.ReferencePrice))
		b.WriteString(fmt.Sprintf("Measured: %s", latest.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC")))
	} else {
		b.WriteString("\nNo reading yet — first monitor cycle pending")
	}
	return b.String()
}

// FormatChannelList formats the /list_channels reply.
func FormatChannelList(dests []string) string {
	if len(dests) == 0 {
		return "No channels configured. Add one with /add_channel @name"
	}
	var b strings.Builder
	b.WriteString("📋 <b>Configured channels:</b>\n")
	for i, d := range dests {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, d))
	}
	return b.String()
}

// FormatDigest formats the scheduled daily digest for one subscriber.
func FormatDigest(symbol string, cfg model.SubscriberConfig, latest *model.Reading) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗞 <b>Daily digest</b> | %s\n\n", symbol))
	if latest != nil {
		b.WriteString(fmt.Sprintf("RSI: %.2f | Price: %.2f\n", latest.Value, latest.ReferencePrice))
	} else {
		b.WriteString("No reading available yet\n")
	}
	b.WriteString(fmt.Sprintf("Your thresholds: ≤%d / ≥%d, alerts %s, %d channel(s)",
		cfg.Oversold, cfg.Overbought, onOff(cfg.AlertsEnabled), len(cfg.Destinations)))
	return b.String()
}

// HelpText is the static /help reply.
const HelpText = `🤖 <b>RSISentinel commands</b>

/start - register and reset to defaults (30/70, alerts on)
/set_oversold N - alert when RSI ≤ N (1-99)
/set_overbought N - alert when RSI ≥ N (1-99)
/add_channel @name - also deliver alerts to a channel
/remove_channel @name - stop delivering to a channel
/list_channels - show configured channels
/status - show settings and the latest RSI reading
/toggle - pause or resume alerts
/help - this message`

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
