package shardmgr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
	"github.com/TLeonardUK/ds3os-sub000/internal/store"
	"github.com/TLeonardUK/ds3os-sub000/internal/webhook"
)

// dynamicShard pairs a running Shard with the bookkeeping Manager needs
// to evict it once idle (spec.md §4.8).
type dynamicShard struct {
	shard  *Shard
	cancel context.CancelFunc
	dir    string
}

// Manager hosts one default shard plus zero or more dynamic shards
// (spec.md §4.8), created on demand by an external admin-HTTP surface
// (SPEC_FULL.md §6 Non-Goals: the HTTP surface itself is out of scope —
// Manager exposes the programmatic hook that surface would call).
// Grounded on internal/login/server.go's lifecycle idiom for the
// top-level Run/shutdown shape.
type Manager struct {
	cfg config.ManagerConfig

	variant  gamevariant.Variant
	store    store.Store
	notifier *webhook.Notifier

	defaultShard *Shard

	mu       sync.Mutex
	dynamic  map[string]*dynamicShard
	nextPort int

	log *slog.Logger
}

// NewManager builds the default shard and returns a Manager ready to
// host dynamic shards alongside it.
func NewManager(cfg config.ManagerConfig, variant gamevariant.Variant, st store.Store, notifier *webhook.Notifier) (*Manager, error) {
	defaultShard, err := New(cfg.DefaultShard, variant, st, notifier)
	if err != nil {
		return nil, fmt.Errorf("shardmgr: starting default shard: %w", err)
	}

	return &Manager{
		cfg:          cfg,
		variant:      variant,
		store:        st,
		notifier:     notifier,
		defaultShard: defaultShard,
		dynamic:      make(map[string]*dynamicShard),
		nextPort:     cfg.DynamicPortRangeStart,
		log:          slog.With("component", "shardmgr"),
	}, nil
}

// Run primes and serves the default shard, the idle-eviction sweep, and
// (on the default shard only) the discovery re-advertisement loop, all
// under one errgroup so any one failing stops the rest (spec.md §4.8,
// §5 "admin HTTP runs on its own thread pool ... the loop drains [a
// single-producer queue] each tick" — here the analogous bound is one
// goroutine per hosted shard plus the two manager-level background
// loops, not per-message work).
func (m *Manager) Run(ctx context.Context) error {
	if err := m.defaultShard.Prime(ctx); err != nil {
		return fmt.Errorf("shardmgr: priming default shard: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.defaultShard.Run(ctx) })
	g.Go(func() error { return m.evictionLoop(ctx) })
	if m.cfg.DiscoveryURL != "" {
		g.Go(func() error { return m.advertiseLoop(ctx) })
	}
	return g.Wait()
}

// CreateDynamicShard provisions and starts one dynamic shard: a fresh id,
// a free port pair taken from the configured range, and a per-shard state
// directory under DynamicShardBaseDir (spec.md §4.8, §6 "Persisted state
// layout"). The admin-HTTP surface that would normally call this is a
// declared Non-goal; this method is its entire implementation surface.
func (m *Manager) CreateDynamicShard(ctx context.Context, overrides func(*config.ShardConfig)) (*Shard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	port, err := m.allocatePortLocked()
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	dir := filepath.Join(m.cfg.DynamicShardBaseDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("shardmgr: provisioning state dir for shard %s: %w", id, err)
	}

	cfg := m.cfg.DefaultShard
	cfg.ShardID = id
	cfg.GamePort = port
	cfg.StateDir = dir
	if overrides != nil {
		overrides(&cfg)
	}

	shard, err := New(cfg, m.variant, m.store, m.notifier)
	if err != nil {
		return nil, fmt.Errorf("shardmgr: starting dynamic shard %s: %w", id, err)
	}
	if err := shard.Prime(ctx); err != nil {
		return nil, fmt.Errorf("shardmgr: priming dynamic shard %s: %w", id, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.dynamic[id] = &dynamicShard{shard: shard, cancel: cancel, dir: dir}

	go func() {
		if err := shard.Run(runCtx); err != nil && runCtx.Err() == nil {
			m.log.Error("dynamic shard exited", "shard", id, "error", err)
		}
	}()

	return shard, nil
}

func (m *Manager) allocatePortLocked() (int, error) {
	used := make(map[int]struct{}, len(m.dynamic))
	for _, d := range m.dynamic {
		used[d.shard.cfg.GamePort] = struct{}{}
	}

	for port := m.nextPort; port <= m.cfg.DynamicPortRangeEnd; port++ {
		if _, taken := used[port]; taken {
			continue
		}
		m.nextPort = port + 1
		return port, nil
	}
	return 0, fmt.Errorf("shardmgr: no free port in range [%d, %d]", m.cfg.DynamicPortRangeStart, m.cfg.DynamicPortRangeEnd)
}

// evictionLoop stops and deletes any dynamic shard whose .keepalive file
// has gone untouched for >= ServerTimeoutSeconds (spec.md §4.8, §7
// "A dynamic shard with zero activity for SERVER_TIMEOUT is torn down").
func (m *Manager) evictionLoop(ctx context.Context) error {
	ticker := time.NewTicker(constants.EvictionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.sweepIdleShards()
		}
	}
}

func (m *Manager) sweepIdleShards() {
	m.mu.Lock()
	defer m.mu.Unlock()

	timeout := time.Duration(m.cfg.DefaultShard.ServerTimeoutSeconds) * time.Second
	for id, d := range m.dynamic {
		info, err := os.Stat(filepath.Join(d.dir, ".keepalive"))
		idle := err != nil || time.Since(info.ModTime()) >= timeout
		if !idle {
			continue
		}

		m.log.Info("evicting idle dynamic shard", "shard", id)
		d.cancel()
		if err := os.RemoveAll(d.dir); err != nil {
			m.log.Error("removing idle shard state dir", "shard", id, "error", err)
		}
		delete(m.dynamic, id)
	}
}

// advertisement is the payload POSTed to DiscoveryURL, matching the
// shard-set shape clients discover the cluster through (spec.md §4.8
// "re-advertises the shard set to an external discovery endpoint").
type advertisement struct {
	ShardID   string `json:"shard_id"`
	Host      string `json:"advertise_host"`
	Port      int    `json:"port"`
	Timestamp string `json:"timestamp"`
}

// advertiseLoop runs only against the default shard (spec.md §4.8 "On the
// default shard a handler also re-advertises the shard set ... on a fixed
// cadence"), POSTing the current shard set every
// DiscoveryAdvertiseEvery seconds.
func (m *Manager) advertiseLoop(ctx context.Context) error {
	interval := time.Duration(m.cfg.DiscoveryAdvertiseEvery) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	client := &http.Client{Timeout: 5 * time.Second}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.advertiseOnce(ctx, client)
		}
	}
}

func (m *Manager) advertiseOnce(ctx context.Context, client *http.Client) {
	entries := m.shardSet()

	body, err := json.Marshal(entries)
	if err != nil {
		m.log.Error("marshaling discovery advertisement", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.DiscoveryURL, bytes.NewReader(body))
	if err != nil {
		m.log.Error("building discovery request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		m.log.Warn("discovery advertisement delivery failed", "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		m.log.Warn("discovery endpoint returned non-2xx", "status", resp.StatusCode)
	}
}

func (m *Manager) shardSet() []advertisement {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	entries := []advertisement{{
		ShardID:   m.cfg.DefaultShard.ShardID,
		Host:      m.cfg.DefaultShard.AdvertiseHost,
		Port:      m.cfg.DefaultShard.GamePort,
		Timestamp: now,
	}}
	for _, d := range m.dynamic {
		entries = append(entries, advertisement{
			ShardID:   d.shard.cfg.ShardID,
			Host:      d.shard.cfg.AdvertiseHost,
			Port:      d.shard.cfg.GamePort,
			Timestamp: now,
		})
	}
	return entries
}
