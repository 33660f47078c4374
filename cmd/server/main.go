package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockPulse/internal/analyzer"
	"StockPulse/internal/archive"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/scanner"
	"StockPulse/internal/scheduler"
	"StockPulse/internal/server"
	"StockPulse/internal/ticker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockPulse starting...")

	// Load config
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

	// Init data source
	source := collector.NewYahooSource(cfg.Proxy)
	log.Printf("[INFO] data source: %s", source.Name())

	// Init archive
	var arc archive.Archive
	if cfg.Database.SQLitePath != "" {
		sa, err := archive.NewSQLiteArchive(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite archive failed, using noop: %v", err)
			arc = archive.NewNoopArchive()
		} else {
			arc = sa
			defer sa.Close()
		}
	} else {
		arc = archive.NewNoopArchive()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Analysis pipeline
	a := analyzer.New(cfg.Analysis, source)
	sc := scanner.New(a, 0)
	disc := ticker.NewDiscoverer(source, cfg.Scanner.Limit)
	strategy := ticker.Strategy(cfg.Scanner.Strategy)

	// Init scheduler
	sched := scheduler.New(ctx, disc, sc, arc, strategy)
	if err := sched.Register(cfg.Scanner.Cron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunNow()
	}

	// Init HTTP server
	srv := server.New(server.Options{
		Addr:              cfg.Server.Addr,
		Analyzer:          a,
		Scanner:           sc,
		Discoverer:        disc,
		Archive:           arc,
		Strategy:          strategy,
		CacheTTL:          time.Duration(cfg.Analysis.CacheTTLSeconds) * time.Second,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	})
	srv.StartCacheJanitor(ctx, 5*time.Minute)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Println("[INFO] StockPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			log.Printf("[ERROR] http server: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] StockPulse stopped")
}
