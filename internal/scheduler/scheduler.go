package scheduler

import (
	"fmt"
	"log"
	"strconv"

	"RSISentinel/internal/dispatcher"
	"RSISentinel/internal/model"
	"RSISentinel/internal/notifier"
	"RSISentinel/internal/registry"

	"github.com/robfig/cron/v3"
)

// ReadingSource exposes the most recent RSI reading.
type ReadingSource interface {
	Latest() *model.Reading
}

// Scheduler runs the daily digest broadcast on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Registry *registry.Registry
	Readings ReadingSource
	Sender   dispatcher.Sender
	Symbol   string
}

// NewScheduler creates a new Scheduler.
func NewScheduler(reg *registry.Registry, readings ReadingSource, sender dispatcher.Sender, symbol string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Registry: reg,
		Readings: readings,
		Sender:   sender,
		Symbol:   symbol,
	}
}

// Register registers the digest task with the given cron spec.
func (s *Scheduler) Register(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow sends the digest immediately (for manual trigger).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

// digestTask sends each subscriber a status digest to their own chat.
// Per-subscriber failures are logged and never abort the broadcast.
func (s *Scheduler) digestTask() {
	subs := s.Registry.ListAll()
	if len(subs) == 0 {
		return
	}
	log.Printf("[INFO] sending daily digest to %d subscriber(s)", len(subs))
	latest := s.Readings.Latest()
	for _, cfg := range subs {
		text := notifier.FormatDigest(s.Symbol, cfg, latest)
		if err := s.Sender.SendTo(strconv.FormatInt(cfg.ChatID, 10), text); err != nil {
			log.Printf("[ERROR] digest to %d: %v", cfg.ChatID, err)
		}
	}
}
