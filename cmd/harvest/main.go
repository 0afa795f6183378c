package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"TempHarvest/internal/collector"
	"TempHarvest/internal/config"
	"TempHarvest/internal/extract"
	"TempHarvest/internal/logging"
	"TempHarvest/internal/notifier"
	"TempHarvest/internal/recorder"
	"TempHarvest/internal/scheduler"
	"TempHarvest/internal/visualize"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config (env CONFIG_PATH overrides)")
	once := flag.Bool("once", false, "run a single harvest and exit, ignoring schedule.cron")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("TempHarvest starting", zap.String("config", *cfgPath), zap.String("city", cfg.Source.City))

	// Init extractor
	strategy, err := extract.New(extract.Options{
		Kind:          cfg.Source.Strategy,
		Charset:       cfg.Source.Charset,
		TableXPath:    cfg.Source.Table.XPath,
		TableMinCells: cfg.Source.Table.MinCells,
		HighVar:       cfg.Source.Embedded.HighVar,
		LowVar:        cfg.Source.Embedded.LowVar,
		DayVar:        cfg.Source.Embedded.DayVar,
	}, log)
	if err != nil {
		log.Fatal("init extractor", zap.Error(err))
	}

	// Init fetcher
	fetcher := collector.NewHTTPFetcher(collector.HTTPOptions{
		Timeout:          cfg.Fetch.Timeout,
		ProxyURL:         cfg.Proxy,
		BreakerThreshold: cfg.Fetch.BreakerThreshold,
		BreakerCooldown:  cfg.Fetch.BreakerCooldown,
	})
	urls := collector.URLBuilder{BaseURL: cfg.Source.BaseURL, City: cfg.Source.City, Template: cfg.Source.URLTemplate}
	builder := collector.NewSeriesBuilder(fetcher, strategy, urls, cfg.Source.Headers, log)
	log.Info("data source", zap.String("fetcher", fetcher.Name()), zap.String("strategy", strategy.Name()))

	// Init recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			log.Warn("create database dir", zap.Error(err))
		}
	}
	rec := recorder.Open(cfg.Database.SQLitePath, log)
	defer rec.Close()

	var charts *visualize.Renderer
	if cfg.Charts.Enabled {
		charts = visualize.NewRenderer(cfg.Charts.Title, log)
	}

	var tn *notifier.TelegramNotifier
	if cfg.NotifyEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, cfg, builder, charts, tn, rec, log)

	if *once {
		summary, err := sched.RunOnce()
		if err != nil {
			log.Error("harvest failed", zap.Error(err))
			rec.Close()
			os.Exit(1)
		}
		log.Info("harvest complete", zap.Int("records", summary.Records), zap.Int("failures", len(summary.Failures)))
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal("register cron task", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, harvesting now")
		sched.HandleCommand("/run")
	}

	log.Info("TempHarvest is running. Press Ctrl+C to stop.", zap.String("cron", cfg.Schedule.Cron))
	<-ctx.Done()
	log.Info("shutdown signal received, stopping...")
}
