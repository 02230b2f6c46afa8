package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/bot"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/config"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/game"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/recorder"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/scheduler"
	"github.com/Parth-Manav/Nightmare-fishing-bot/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Stardust Pond starting...")

	_ = godotenv.Load()

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

	// Init state store
	st := store.Load(cfg.Data.StateFile, cfg.Data.BackupDir)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Data.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Data.SQLitePath)
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

	// Init game core
	engine := game.NewEngine(st)
	coordinator := game.NewResetCoordinator(st, rec)

	// Init Discord bot
	b, err := bot.New(cfg.Discord.BotToken, st, engine, coordinator, rec)
	if err != nil {
		log.Fatalf("[FATAL] init discord bot: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, st, coordinator, b)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Connect to Discord
	if err := b.Start(ctx); err != nil {
		log.Fatalf("[FATAL] start discord bot: %v", err)
	}
	defer b.Close(context.Background())

	// Optional: post a summary immediately on start
	if cfg.RunSummaryOnStart {
		log.Println("[INFO] RUN_SUMMARY_ON_START enabled, posting summary now")
		go b.PostDailySummary(ctx)
	}

	log.Println("[INFO] Stardust Pond is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] Stardust Pond stopped")
}
