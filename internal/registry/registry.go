package registry

import (
	"errors"
	"sort"
	"sync"
	"time"

	"RSISentinel/internal/model"
)

var (
	// ErrNotRegistered means the chat has not issued /start yet.
	ErrNotRegistered = errors.New("subscriber not registered")
	// ErrInvalidThreshold means a threshold outside 1..99 was given.
	ErrInvalidThreshold = errors.New("threshold must be between 1 and 99")
	// ErrDestinationExists means the destination is already configured.
	ErrDestinationExists = errors.New("destination already added")
	// ErrDestinationNotFound means the destination is not configured.
	ErrDestinationNotFound = errors.New("destination not found")
)

// ThresholdKind selects which threshold an update targets.
type ThresholdKind int

const (
	Oversold ThresholdKind = iota
	Overbought
)

// Registry holds all subscriber configurations in memory, keyed by chat
// id. Callers always receive copies; mutation goes through the methods
// below. State is intentionally not persisted across restarts.
type Registry struct {
	mu   sync.Mutex
	subs map[int64]*model.SubscriberConfig
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{subs: make(map[int64]*model.SubscriberConfig)}
}

// Register creates the default configuration for a chat. Re-registering
// resets an existing subscriber back to defaults.
func (r *Registry) Register(chatID int64) model.SubscriberConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg := model.NewSubscriberConfig(chatID)
	r.subs[chatID] = &cfg
	return cfg
}

// Get returns a copy of the subscriber's configuration.
func (r *Registry) Get(chatID int64) (model.SubscriberConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.subs[chatID]
	if !ok {
		return model.SubscriberConfig{}, ErrNotRegistered
	}
	return copyConfig(cfg), nil
}

// SetThreshold updates the oversold or overbought threshold.
func (r *Registry) SetThreshold(chatID int64, kind ThresholdKind, value int) error {
	if value < 1 || value > 99 {
		return ErrInvalidThreshold
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.subs[chatID]
	if !ok {
		return ErrNotRegistered
	}
	if kind == Oversold {
		cfg.Oversold = value
	} else {
		cfg.Overbought = value
	}
	return nil
}

// Toggle flips alert delivery for the subscriber and reports the new state.
func (r *Registry) Toggle(chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.subs[chatID]
	if !ok {
		return false, ErrNotRegistered
	}
	cfg.AlertsEnabled = !cfg.AlertsEnabled
	return cfg.AlertsEnabled, nil
}

// AddDestination appends a secondary destination.
func (r *Registry) AddDestination(chatID int64, dest string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.subs[chatID]
	if !ok {
		return ErrNotRegistered
	}
	for _, d := range cfg.Destinations {
		if d == dest {
			return ErrDestinationExists
		}
	}
	cfg.Destinations = append(cfg.Destinations, dest)
	return nil
}

// RemoveDestination removes a previously added destination.
func (r *Registry) RemoveDestination(chatID int64, dest string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.subs[chatID]
	if !ok {
		return ErrNotRegistered
	}
	for i, d := range cfg.Destinations {
		if d == dest {
			cfg.Destinations = append(cfg.Destinations[:i], cfg.Destinations[i+1:]...)
			return nil
		}
	}
	return ErrDestinationNotFound
}

// TouchLastAlert records the time of a successfully delivered alert.
func (r *Registry) TouchLastAlert(chatID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.subs[chatID]
	if !ok {
		return ErrNotRegistered
	}
	cfg.LastAlertAt = at
	return nil
}

// ListAll returns a snapshot of all subscriber configurations, ordered
// by chat id for deterministic iteration.
func (r *Registry) ListAll() []model.SubscriberConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.SubscriberConfig, 0, len(r.subs))
	for _, cfg := range r.subs {
		out = append(out, copyConfig(cfg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out
}

func copyConfig(cfg *model.SubscriberConfig) model.SubscriberConfig {
	out := *cfg
	out.Destinations = append([]string(nil), cfg.Destinations...)
	return out
}
