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

const configPath = "config/manager.yaml"

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

	slog.Info("ds3os-sub000 shard manager starting")

	cfgPath := configPath
	if p := os.Getenv("DS3OS_MANAGER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadManagerConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.DefaultShard.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	slog.Info("config loaded",
		"default_shard_id", cfg.DefaultShard.ShardID,
		"dynamic_port_range", fmt.Sprintf("%d-%d", cfg.DynamicPortRangeStart, cfg.DynamicPortRangeEnd))

	if err := store.RunMigrations(ctx, cfg.DefaultShard.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	db, err := store.New(ctx, cfg.DefaultShard.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()
	slog.Info("database connected")

	variant := ds3.New()
	notifier := webhook.New(cfg.DefaultShard.WebhookURL, constants.WebhookCooldown)

	manager, err := shardmgr.NewManager(cfg, variant, db, notifier)
	if err != nil {
		return fmt.Errorf("creating shard manager: %w", err)
	}

	if err := manager.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running shard manager: %w", err)
	}
	return nil
}
