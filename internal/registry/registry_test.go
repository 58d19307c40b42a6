package registry

import (
	"errors"
	"testing"
	"time"
)

func TestRegister_Defaults(t *testing.T) {
	r := New()
	cfg := r.Register(42)
	if cfg.ChatID != 42 {
		t.Errorf("expected chat id 42, got %d", cfg.ChatID)
	}
	if cfg.Oversold != 30 || cfg.Overbought != 70 {
		t.Errorf("unexpected default thresholds: %d/%d", cfg.Oversold, cfg.Overbought)
	}
	if !cfg.AlertsEnabled {
		t.Error("expected alerts enabled by default")
	}
	if len(cfg.Destinations) != 0 {
		t.Errorf("expected no destinations, got %v", cfg.Destinations)
	}
	if !cfg.LastAlertAt.IsZero() {
		t.Error("expected zero last-alert time")
	}
}

func TestRegister_ResetsExisting(t *testing.T) {
	r := New()
	r.Register(42)
	if err := r.SetThreshold(42, Oversold, 20); err != nil {
		t.Fatalf("set threshold: %v", err)
	}
	if err := r.AddDestination(42, "@mychannel"); err != nil {
		t.Fatalf("add destination: %v", err)
	}

	cfg := r.Register(42)
	if cfg.Oversold != 30 {
		t.Errorf("expected re-register to reset oversold to 30, got %d", cfg.Oversold)
	}
	if len(cfg.Destinations) != 0 {
		t.Errorf("expected re-register to clear destinations, got %v", cfg.Destinations)
	}
}

func TestGet_NotRegistered(t *testing.T) {
	r := New()
	if _, err := r.Get(7); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}

func TestSetThreshold(t *testing.T) {
	r := New()
	r.Register(1)

	tests := []struct {
		name    string
		kind    ThresholdKind
		value   int
		wantErr error
	}{
		{"valid oversold", Oversold, 25, nil},
		{"valid overbought", Overbought, 75, nil},
		{"boundary low", Oversold, 1, nil},
		{"boundary high", Overbought, 99, nil},
		{"zero", Oversold, 0, ErrInvalidThreshold},
		{"hundred", Overbought, 100, ErrInvalidThreshold},
		{"negative", Oversold, -5, ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.SetThreshold(1, tt.kind, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	cfg, _ := r.Get(1)
	if cfg.Oversold != 1 || cfg.Overbought != 99 {
		t.Errorf("unexpected thresholds after updates: %d/%d", cfg.Oversold, cfg.Overbought)
	}

	if err := r.SetThreshold(99, Oversold, 25); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered for unknown chat, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	r := New()
	r.Register(1)

	on, err := r.Toggle(1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if on {
		t.Error("expected alerts off after first toggle")
	}
	on, _ = r.Toggle(1)
	if !on {
		t.Error("expected alerts back on after second toggle")
	}

	if _, err := r.Toggle(2); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}

func TestDestinations(t *testing.T) {
	r := New()
	r.Register(1)

	if err := r.AddDestination(1, "@alerts"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.AddDestination(1, "-1001234567890"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.AddDestination(1, "@alerts"); !errors.Is(err, ErrDestinationExists) {
		t.Errorf("expected ErrDestinationExists, got %v", err)
	}

	cfg, _ := r.Get(1)
	if len(cfg.Destinations) != 2 {
		t.Fatalf("expected 2 destinations, got %v", cfg.Destinations)
	}
	if cfg.Destinations[0] != "@alerts" || cfg.Destinations[1] != "-1001234567890" {
		t.Errorf("expected insertion order preserved, got %v", cfg.Destinations)
	}

	if err := r.RemoveDestination(1, "@alerts"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := r.RemoveDestination(1, "@alerts"); !errors.Is(err, ErrDestinationNotFound) {
		t.Errorf("expected ErrDestinationNotFound, got %v", err)
	}

	cfg, _ = r.Get(1)
	if len(cfg.Destinations) != 1 || cfg.Destinations[0] != "-1001234567890" {
		t.Errorf("unexpected destinations after removal: %v", cfg.Destinations)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	r := New()
	r.Register(1)
	r.AddDestination(1, "@alerts")

	cfg, _ := r.Get(1)
	cfg.Destinations[0] = "@mutated"
	cfg.Oversold = 5

	fresh, _ := r.Get(1)
	if fresh.Destinations[0] != "@alerts" || fresh.Oversold != 30 {
		t.Error("mutating a returned copy must not affect registry state")
	}
}

func TestTouchLastAlert(t *testing.T) {
	r := New()
	r.Register(1)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := r.TouchLastAlert(1, at); err != nil {
		t.Fatalf("touch: %v", err)
	}
	cfg, _ := r.Get(1)
	if !cfg.LastAlertAt.Equal(at) {
		t.Errorf("expected last alert %v, got %v", at, cfg.LastAlertAt)
	}
}

func TestListAll_OrderedSnapshot(t *testing.T) {
	r := New()
	r.Register(30)
	r.Register(10)
	r.Register(20)

	all := r.ListAll()
	if len(all) != 3 {
		t.Fatalf("expected 3 subscribers, got %d", len(all))
	}
	for i, want := range []int64{10, 20, 30} {
		if all[i].ChatID != want {
			t.Errorf("position %d: expected chat %d, got %d", i, want, all[i].ChatID)
		}
	}
}
