package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"RSISentinel/internal/bot"
	"RSISentinel/internal/collector"
	"RSISentinel/internal/config"
	"RSISentinel/internal/dispatcher"
	"RSISentinel/internal/monitor"
	"RSISentinel/internal/notifier"
	"RSISentinel/internal/recorder"
	"RSISentinel/internal/registry"
	"RSISentinel/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] RSISentinel starting...")

	// Load .env if present, then config
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init Telegram notifier and verify token/connectivity up front
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)
	username, err := tn.CheckAuth()
	if err != nil {
		log.Fatalf("[FATAL] telegram connectivity check: %v", err)
	}
	log.Printf("[INFO] authenticated as @%s", username)

	// Init fetcher
	var fetcher collector.Fetcher
	if os.Getenv("MOCK_DATA") == "true" {
		fetcher = &collector.MockFetcher{}
	} else {
		fetcher = collector.NewBinanceFetcher(cfg.Market.BaseURL, cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s (%s %s)", fetcher.Name(), cfg.Market.Symbol, cfg.Market.Interval)

	// Init collector
	col := collector.NewCollector(fetcher, cfg.Market.Symbol, cfg.Market.Interval, cfg.Market.CandleLimit, cfg.Monitor.RSIPeriod)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Subscriber registry, lifecycle scoped to the process
	reg := registry.New()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init monitor loop
	mon := monitor.New(col, reg, dispatcher.New(tn), rec, cfg.Market.Symbol, cfg.MonitorInterval(), cfg.AlertCooldown())
	mon.Start(ctx)

	// Init daily digest scheduler
	sched := scheduler.NewScheduler(reg, mon, tn, cfg.Market.Symbol)
	if err := sched.Register(cfg.Monitor.DigestCron); err != nil {
		log.Fatalf("[FATAL] register digest task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start command polling
	router := bot.NewRouter(reg, mon, tn, cfg.Market.Symbol)
	go tn.StartPolling(ctx, router.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	log.Println("[INFO] RSISentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] RSISentinel stopped")
}
