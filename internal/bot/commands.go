package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"RSISentinel/internal/model"
	"RSISentinel/internal/notifier"
	"RSISentinel/internal/registry"
)

// Prober verifies that a destination is deliverable before it is added.
type Prober interface {
	Probe(dest string) error
}

// ReadingSource exposes the most recent RSI reading.
type ReadingSource interface {
	Latest() *model.Reading
}

const notRegisteredReply = "You are not registered yet. Send /start first."

// Router maps incoming chat commands onto registry operations.
type Router struct {
	Registry *registry.Registry
	Readings ReadingSource
	Prober   Prober
	Symbol   string
}

// NewRouter creates a command router.
func NewRouter(reg *registry.Registry, readings ReadingSource, prober Prober, symbol string) *Router {
	return &Router{Registry: reg, Readings: readings, Prober: prober, Symbol: symbol}
}

// HandleCommand processes one command and returns the reply text.
func (r *Router) HandleCommand(chatID int64, text string) string {
	cmd, arg := splitCommand(text)

	switch cmd {
	case "/start":
		cfg := r.Registry.Register(chatID)
		return fmt.Sprintf("👋 Monitoring %s RSI for you.\nThresholds: ≤%d / ≥%d, alerts on.\nSee /help for commands.",
			r.Symbol, cfg.Oversold, cfg.Overbought)

	case "/set_oversold":
		return r.setThreshold(chatID, registry.Oversold, arg)

	case "/set_overbought":
		return r.setThreshold(chatID, registry.Overbought, arg)

	case "/add_channel":
		return r.addChannel(chatID, arg)

	case "/remove_channel":
		if arg == "" {
			return "Usage: /remove_channel @name or /remove_channel -100..."
		}
		err := r.Registry.RemoveDestination(chatID, arg)
		switch {
		case errors.Is(err, registry.ErrNotRegistered):
			return notRegisteredReply
		case errors.Is(err, registry.ErrDestinationNotFound):
			return fmt.Sprintf("%s is not in your channel list. See /list_channels.", arg)
		case err != nil:
			return fmt.Sprintf("Could not remove channel: %v", err)
		}
		return fmt.Sprintf("🗑 Removed %s.", arg)

	case "/list_channels":
		cfg, err := r.Registry.Get(chatID)
		if err != nil {
			return notRegisteredReply
		}
		return notifier.FormatChannelList(cfg.Destinations)

	case "/status":
		cfg, err := r.Registry.Get(chatID)
		if err != nil {
			return notRegisteredReply
		}
		return notifier.FormatStatus(r.Symbol, cfg, r.Readings.Latest())

	case "/toggle":
		on, err := r.Registry.Toggle(chatID)
		if err != nil {
			return notRegisteredReply
		}
		if on {
			return "🔔 Alerts enabled."
		}
		return "🔕 Alerts paused. Send /toggle to resume."

	case "/help":
		return notifier.HelpText

	default:
		return "Unknown command. See /help."
	}
}

func (r *Router) setThreshold(chatID int64, kind registry.ThresholdKind, arg string) string {
	name, label := "oversold", "Oversold"
	if kind == registry.Overbought {
		name, label = "overbought", "Overbought"
	}
	value, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Sprintf("Usage: /set_%s N (integer 1-99)", name)
	}
	switch err := r.Registry.SetThreshold(chatID, kind, value); {
	case errors.Is(err, registry.ErrNotRegistered):
		return notRegisteredReply
	case errors.Is(err, registry.ErrInvalidThreshold):
		return fmt.Sprintf("Threshold must be between 1 and 99, got %d.", value)
	case err != nil:
		return fmt.Sprintf("Could not update threshold: %v", err)
	}
	return fmt.Sprintf("✅ %s threshold set to %d.", label, value)
}

func (r *Router) addChannel(chatID int64, arg string) string {
	if arg == "" {
		return "Usage: /add_channel @name or /add_channel -100..."
	}
	if !notifier.ValidDestination(arg) {
		return "Invalid destination. Use @name or a -100… channel id."
	}
	cfg, err := r.Registry.Get(chatID)
	if err != nil {
		return notRegisteredReply
	}
	for _, d := range cfg.Destinations {
		if d == arg {
			return fmt.Sprintf("%s is already in your channel list.", arg)
		}
	}
	if err := r.Prober.Probe(arg); err != nil {
		return fmt.Sprintf("Cannot deliver to %s: %v\nMake sure the bot is an admin of the channel.", arg, err)
	}
	switch err := r.Registry.AddDestination(chatID, arg); {
	case errors.Is(err, registry.ErrDestinationExists):
		return fmt.Sprintf("%s is already in your channel list.", arg)
	case err != nil:
		return fmt.Sprintf("Could not add channel: %v", err)
	}
	return fmt.Sprintf("📡 Added %s. Alerts will also be delivered there.", arg)
}

func splitCommand(text string) (cmd, arg string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	cmd = fields[0]
	// Commands in groups arrive as /cmd@botname.
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	if len(fields) > 1 {
		arg = fields[1]
	}
	return cmd, arg
}
