package alert

import (
	"testing"
	"time"

	"RSISentinel/internal/model"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testConfig() model.SubscriberConfig {
	cfg := model.NewSubscriberConfig(1)
	return cfg
}

func reading(v float64) model.Reading {
	return model.Reading{Value: v, Timestamp: base, ReferencePrice: 43000}
}

func TestShouldAlert_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.AlertsEnabled = false
	for _, v := range []float64{0, 15, 50, 85, 100} {
		if ShouldAlert(cfg, reading(v), base, DefaultCooldown) {
			t.Errorf("RSI %.0f: expected no alert when disabled", v)
		}
	}
}

func TestShouldAlert_Cooldown(t *testing.T) {
	cfg := testConfig()
	cfg.LastAlertAt = base.Add(-2 * time.Minute)
	if ShouldAlert(cfg, reading(15), base, DefaultCooldown) {
		t.Error("expected no alert within cooldown even with crossed threshold")
	}

	cfg.LastAlertAt = base.Add(-5 * time.Minute)
	if !ShouldAlert(cfg, reading(15), base, DefaultCooldown) {
		t.Error("expected alert once cooldown has fully elapsed")
	}
}

func TestShouldAlert_NeverAlerted(t *testing.T) {
	cfg := testConfig() // zero LastAlertAt
	if !ShouldAlert(cfg, reading(15), base, DefaultCooldown) {
		t.Error("expected alert for a subscriber who has never been alerted")
	}
}

func TestShouldAlert_Thresholds(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{"deep oversold", 10, true},
		{"exactly oversold", 30, true},
		{"just above oversold", 30.01, false},
		{"neutral", 50, false},
		{"just below overbought", 69.99, false},
		{"exactly overbought", 70, true},
		{"deep overbought", 95, true},
	}
	cfg := testConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldAlert(cfg, reading(tt.value), base, DefaultCooldown); got != tt.want {
				t.Errorf("RSI %.2f: expected %v, got %v", tt.value, tt.want, got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	cfg := testConfig()
	if Classify(25, cfg) != Oversold {
		t.Error("expected oversold classification")
	}
	if Classify(75, cfg) != Overbought {
		t.Error("expected overbought classification")
	}
	if Classify(50, cfg) != None {
		t.Error("expected no classification in the neutral band")
	}
	if Classify(30, cfg) != Oversold || Classify(70, cfg) != Overbought {
		t.Error("boundaries must classify inclusively")
	}
}

func TestClassify_CrossedThresholdsPreferOversold(t *testing.T) {
	cfg := testConfig()
	cfg.Oversold = 80
	cfg.Overbought = 20
	// 50 satisfies both; oversold wins.
	if Classify(50, cfg) != Oversold {
		t.Error("expected oversold branch to win when both thresholds match")
	}
}
