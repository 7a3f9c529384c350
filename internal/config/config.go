// Package config loads the shard and manager configuration from YAML.
// Config is read once at process startup and treated as immutable for the
// lifetime of the process; an operator edit takes effect only on the next
// restart (spec.md §4.9).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds PostgreSQL connection parameters for the durable
// store external collaborator (spec.md §4.9).
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	MaxConns int32 `yaml:"max_conns"` // default: pgxpool's own default
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
	if d.MaxConns > 0 {
		dsn += fmt.Sprintf("&pool_max_conns=%d", d.MaxConns)
	}
	return dsn
}

// MatchingTable is a per-interaction-kind tolerance table used by
// can_match (spec.md §4.5).
type MatchingTable struct {
	SoulRangeUp        int32   `yaml:"soul_range_up"`
	SoulRangeDown       int32  `yaml:"soul_range_down"`
	SoulPct            float64 `yaml:"soul_pct"`
	WeaponRange        int32   `yaml:"weapon_range"`
	IgnoreWhenPassword bool    `yaml:"ignore_when_password"`
}

// FeatureToggles disables whole matchmaking feature areas
// (spec.md §3 shard configuration).
type FeatureToggles struct {
	DisableBloodstains        bool `yaml:"disable_bloodstains"`
	DisableGhosts             bool `yaml:"disable_ghosts"`
	DisableMessages           bool `yaml:"disable_messages"`
	DisableCoop               bool `yaml:"disable_coop"`
	DisableInvasions          bool `yaml:"disable_invasions"`
	DisableInvasionAutoSummon bool `yaml:"disable_invasion_auto_summon"`
	DisableWeaponLevelMatching bool `yaml:"disable_weapon_level_matching"`
}

// AntiCheatConfig holds penalty weights and ban thresholds
// (spec.md §4.7).
type AntiCheatConfig struct {
	WarnThreshold           float64 `yaml:"warn_threshold"`
	BanThreshold            float64 `yaml:"ban_threshold"`
	AutoBan                 bool    `yaml:"auto_ban"`
	ScoreImpossibleStats    float64 `yaml:"score_impossible_stats"`
	ScoreInvalidName        float64 `yaml:"score_invalid_name"`
	ScoreClientFlagged      float64 `yaml:"score_client_flagged"`
}

// PoolConfig bounds one live-cache artifact kind (spec.md §4.6).
type PoolConfig struct {
	MaxEntriesPerArea int `yaml:"max_entries_per_area"`
	PrimeCountPerArea int `yaml:"prime_count_per_area"`
}

// XPTableEntry is one (rank, xp-required-to-reach-it) row
// (spec.md §3 Character, §8 scenario 4).
type XPTableEntry struct {
	Rank       uint32 `yaml:"rank"`
	Threshold  uint32 `yaml:"threshold"`
}

// QuickMatchConfig holds undead-match XP/rank tuning
// (spec.md §4.5 quick-match handler).
type QuickMatchConfig struct {
	WinXP   uint32         `yaml:"win_xp"`
	LoseXP  uint32         `yaml:"lose_xp"`
	DrawXP  uint32         `yaml:"draw_xp"`
	XPTable []XPTableEntry `yaml:"xp_table"`
}

// ShardConfig is the full configuration of one shard (spec.md §3).
type ShardConfig struct {
	// Identity
	ShardID       string `yaml:"shard_id"`
	AdvertiseHost string `yaml:"advertise_host"`

	// Network
	BindAddress string `yaml:"bind_address"`
	GamePort    int    `yaml:"game_port"`

	// Optional shard password (gates matching per-kind via IgnoreWhenPassword)
	Password string `yaml:"password"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Matching tables, keyed by interaction kind: "summon", "invasion",
	// "visitor", "undead_match".
	MatchingTables map[string]MatchingTable `yaml:"matching_tables"`

	Features FeatureToggles `yaml:"features"`

	AntiCheat AntiCheatConfig `yaml:"anti_cheat"`

	Pools map[string]PoolConfig `yaml:"pools"` // keyed by "bloodmessage","bloodstain","ghost"

	QuickMatch QuickMatchConfig `yaml:"quickmatch"`

	MaxSignsPerGetSignList int `yaml:"max_signs_per_get_sign_list"`

	// Upload config pushed to clients on login (spec.md §4.5 boot handler).
	UploadIntervalSeconds int `yaml:"upload_interval_seconds"`

	// Announcements/Changelog are the MOTD-style entries
	// RequestGetAnnounceMessageList returns under normal conditions
	// (spec.md §4.5 boot handler).
	Announcements []string `yaml:"announcements"`
	Changelog     []string `yaml:"changelog"`

	// WarnAnnouncement/BanAnnouncement replace the announcement list when
	// the caller's anti-cheat penalty exceeds the warn threshold, or when
	// the caller is banned (spec.md §4.5 boot handler).
	WarnAnnouncement string `yaml:"warn_announcement"`
	BanAnnouncement  string `yaml:"ban_announcement"`

	// Directory this shard persists its state in (spec.md §6).
	StateDir string `yaml:"state_dir"`

	// Idle-eviction window for dynamic shards (spec.md §4.8).
	ServerTimeoutSeconds int `yaml:"server_timeout_seconds"`

	LogLevel string `yaml:"log_level"`

	WebhookURL string `yaml:"webhook_url"`

	// PrimeAreaIDs lists the area ids the live-cache pools are primed for
	// at shard startup (spec.md §4.6). The durable store has no "list
	// distinct areas" query, only per-area lookups, so the set of areas
	// worth priming is operator knowledge supplied here rather than
	// discovered.
	PrimeAreaIDs []uint32 `yaml:"prime_area_ids"`
}

// ManagerConfig configures the process that hosts the default shard plus
// zero or more dynamic shards (spec.md §4.8).
type ManagerConfig struct {
	DefaultShard ShardConfig `yaml:"default_shard"`

	DynamicPortRangeStart int `yaml:"dynamic_port_range_start"`
	DynamicPortRangeEnd   int `yaml:"dynamic_port_range_end"`

	DynamicShardBaseDir string `yaml:"dynamic_shard_base_dir"`

	DiscoveryURL            string `yaml:"discovery_url"`
	DiscoveryAdvertiseEvery int    `yaml:"discovery_advertise_every_seconds"`

	AdminBindAddress string `yaml:"admin_bind_address"`
}

// DefaultMatchingTables returns the standard summon/invasion/visitor/
// undead-match tolerance tables (values chosen to match spec.md §8
// scenario 2: ±10 soul, ±1 weapon).
func DefaultMatchingTables() map[string]MatchingTable {
	return map[string]MatchingTable{
		"summon": {
			SoulRangeUp:   10,
			SoulRangeDown: 10,
			SoulPct:       10,
			WeaponRange:   1,
		},
		"invasion": {
			SoulRangeUp:   10,
			SoulRangeDown: 10,
			SoulPct:       10,
			WeaponRange:   1,
		},
		"visitor": {
			SoulRangeUp:   20,
			SoulRangeDown: 20,
			SoulPct:       20,
			WeaponRange:   2,
		},
		"undead_match": {
			SoulRangeUp:   15,
			SoulRangeDown: 15,
			SoulPct:       15,
			WeaponRange:   2,
		},
	}
}

// DefaultAntiCheat returns the weights used in spec.md §8 scenario 5.
func DefaultAntiCheat() AntiCheatConfig {
	return AntiCheatConfig{
		WarnThreshold:        1.0,
		BanThreshold:         5.0,
		AutoBan:              true,
		ScoreImpossibleStats: 3.0,
		ScoreInvalidName:     2.0,
		ScoreClientFlagged:   4.0,
	}
}

// DefaultPools returns the pool caps for the three durable artifact
// kinds, keyed as expected by ShardConfig.Pools.
func DefaultPools() map[string]PoolConfig {
	return map[string]PoolConfig{
		"bloodmessage": {MaxEntriesPerArea: 200, PrimeCountPerArea: 50},
		"bloodstain":   {MaxEntriesPerArea: 100, PrimeCountPerArea: 30},
		"ghost":        {MaxEntriesPerArea: 50, PrimeCountPerArea: 20},
	}
}

// DefaultQuickMatch returns the XP table from spec.md §8 scenario 4.
func DefaultQuickMatch() QuickMatchConfig {
	return QuickMatchConfig{
		WinXP:  120,
		LoseXP: 10,
		DrawXP: 40,
		XPTable: []XPTableEntry{
			{Rank: 0, Threshold: 0},
			{Rank: 1, Threshold: 100},
			{Rank: 2, Threshold: 250},
		},
	}
}

// DefaultShardConfig returns a ShardConfig with every sub-table defaulted,
// suitable as a base that a loaded YAML file overlays.
func DefaultShardConfig() ShardConfig {
	return ShardConfig{
		BindAddress:            "0.0.0.0",
		GamePort:               50000,
		MatchingTables:         DefaultMatchingTables(),
		AntiCheat:              DefaultAntiCheat(),
		Pools:                  DefaultPools(),
		QuickMatch:             DefaultQuickMatch(),
		MaxSignsPerGetSignList: 30,
		UploadIntervalSeconds:  300,
		ServerTimeoutSeconds:   600,
		LogLevel:               "info",
		WarnAnnouncement:       "Suspicious activity has been detected on this account. Continued violations will result in a ban.",
		BanAnnouncement:        "This account has been banned.",
	}
}

// LoadShardConfig reads and parses a shard configuration file, overlaying
// it onto DefaultShardConfig so unset YAML fields keep their defaults.
func LoadShardConfig(path string) (ShardConfig, error) {
	cfg := DefaultShardConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return ShardConfig{}, fmt.Errorf("reading shard config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ShardConfig{}, fmt.Errorf("parsing shard config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadManagerConfig reads and parses a manager configuration file.
func LoadManagerConfig(path string) (ManagerConfig, error) {
	cfg := ManagerConfig{DefaultShard: DefaultShardConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		return ManagerConfig{}, fmt.Errorf("reading manager config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ManagerConfig{}, fmt.Errorf("parsing manager config %s: %w", path, err)
	}
	return cfg, nil
}
