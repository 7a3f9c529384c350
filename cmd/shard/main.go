package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant/ds3"
	"github.com/TLeonardUK/ds3os-sub000/internal/shardmgr"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
	"github.com/TLeonardUK/ds3os-sub000/internal/webhook"
)

const configPath = "config/shard.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	slog.Info("ds3os-sub000 shard starting")

	cfgPath := configPath
	if p := os.Getenv("DS3OS_SHARD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadShardConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	slog.Info("config loaded", "shard_id", cfg.ShardID, "bind", cfg.BindAddress, "port", cfg.GamePort)

	if err := store.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	db, err := store.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()
	slog.Info("database connected")

	variant := ds3.New()
	notifier := webhook.New(cfg.WebhookURL, constants.WebhookCooldown)

	shard, err := shardmgr.New(cfg, variant, db, notifier)
	if err != nil {
		return fmt.Errorf("creating shard: %w", err)
	}

	if err := shard.Prime(ctx); err != nil {
		return fmt.Errorf("priming shard caches: %w", err)
	}
	slog.Info("shard caches primed")

	if err := shard.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running shard: %w", err)
	}
	return nil
}
