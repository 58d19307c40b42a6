package monitor

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"RSISentinel/internal/alert"
	"RSISentinel/internal/collector"
	"RSISentinel/internal/dispatcher"
	"RSISentinel/internal/model"
	"RSISentinel/internal/notifier"
	"RSISentinel/internal/recorder"
	"RSISentinel/internal/registry"
)

// Monitor runs the periodic fetch→compute→evaluate→dispatch cycle and
// holds the most recent reading for status queries.
type Monitor struct {
	Collector  *collector.Collector
	Registry   *registry.Registry
	Dispatcher *dispatcher.Dispatcher
	Recorder   recorder.Recorder
	Symbol     string
	Interval   time.Duration
	Cooldown   time.Duration

	now func() time.Time

	mu     sync.Mutex
	latest *model.Reading
}

// New creates a Monitor using the wall clock.
func New(col *collector.Collector, reg *registry.Registry, disp *dispatcher.Dispatcher, rec recorder.Recorder, symbol string, interval, cooldown time.Duration) *Monitor {
	return &Monitor{
		Collector:  col,
		Registry:   reg,
		Dispatcher: disp,
		Recorder:   rec,
		Symbol:     symbol,
		Interval:   interval,
		Cooldown:   cooldown,
		now:        time.Now,
	}
}

// SetClock overrides the time source for deterministic tests.
func (m *Monitor) SetClock(now func() time.Time) { m.now = now }

// Latest returns a copy of the most recent reading, or nil before the
// first successful cycle.
func (m *Monitor) Latest() *model.Reading {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == nil {
		return nil
	}
	r := *m.latest
	return &r
}

// Start launches the monitor loop. Each cycle runs to completion, then
// the next one is scheduled Interval after the end of handling, so slow
// cycles drift the effective period rather than overlapping.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		log.Printf("[INFO] monitor started: %s every %v", m.Symbol, m.Interval)
		for {
			m.RunCycle()
			select {
			case <-ctx.Done():
				log.Println("[INFO] monitor stopped")
				return
			case <-time.After(m.Interval):
			}
		}
	}()
}

// RunCycle executes one monitor cycle. Fetch or compute failures abort
// only this cycle.
func (m *Monitor) RunCycle() {
	reading, err := m.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] monitor cycle: %v", err)
		return
	}

	m.mu.Lock()
	m.latest = reading
	m.mu.Unlock()

	if err := m.Recorder.RecordReading(&recorder.ReadingRow{
		Timestamp: reading.Timestamp,
		RSI:       reading.Value,
		Price:     reading.ReferencePrice,
	}); err != nil {
		log.Printf("[ERROR] record reading: %v", err)
	}

	now := m.now()
	for _, cfg := range m.Registry.ListAll() {
		if !alert.ShouldAlert(cfg, *reading, now, m.Cooldown) {
			continue
		}
		kind := alert.Classify(reading.Value, cfg)
		if kind == alert.None {
			continue
		}

		text := notifier.FormatAlert(m.Symbol, *reading, kind, cfg)
		primary := strconv.FormatInt(cfg.ChatID, 10)
		outcomes, err := m.Dispatcher.Dispatch(primary, text, cfg.Destinations)
		if err != nil {
			// Primary send failed: no cooldown update, retried next
			// qualifying cycle.
			log.Printf("[ERROR] dispatch to %d: %v", cfg.ChatID, err)
			continue
		}

		if err := m.Registry.TouchLastAlert(cfg.ChatID, m.now()); err != nil {
			log.Printf("[WARN] touch last alert for %d: %v", cfg.ChatID, err)
		}

		failures := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failures++
			}
		}
		if err := m.Recorder.RecordAlert(&recorder.AlertRow{
			Timestamp:    now,
			ChatID:       cfg.ChatID,
			RSI:          reading.Value,
			Price:        reading.ReferencePrice,
			Kind:         kindLabel(kind),
			Destinations: len(outcomes),
			Failures:     failures,
		}); err != nil {
			log.Printf("[ERROR] record alert: %v", err)
		}
		log.Printf("[INFO] alert sent to %d (RSI %.2f, %s, %d/%d channels ok)",
			cfg.ChatID, reading.Value, kindLabel(kind), len(outcomes)-failures, len(outcomes))
	}
}

func kindLabel(k alert.Kind) string {
	if k == alert.Oversold {
		return "OVERSOLD"
	}
	return "OVERBOUGHT"
}
