package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// FindOrCreatePlayer idempotently resolves steamID to a player_id
// (spec.md §4.9), grounded on internal/db/db.go's GetAccount/CreateAccount
// find-then-create pair, folded into one upsert statement here since
// Postgres can do it atomically.
func (s *PostgresStore) FindOrCreatePlayer(ctx context.Context, steamID string) (uint32, error) {
	const query = `
		INSERT INTO players (steam_id)
		VALUES ($1)
		ON CONFLICT (steam_id) DO UPDATE SET steam_id = EXCLUDED.steam_id
		RETURNING player_id
	`
	var playerID uint32
	if err := s.pool.QueryRow(ctx, query, steamID).Scan(&playerID); err != nil {
		return 0, fmt.Errorf("finding or creating player %q: %w", steamID, err)
	}
	return playerID, nil
}

// BanPlayer marks steamID as banned (spec.md §4.9, §4.5 boot handler).
func (s *PostgresStore) BanPlayer(ctx context.Context, steamID string) error {
	const query = `UPDATE players SET banned = true WHERE steam_id = $1`
	_, err := s.pool.Exec(ctx, query, steamID)
	if err != nil {
		return fmt.Errorf("banning player %q: %w", steamID, err)
	}
	return nil
}

// IsBanned reports whether steamID is in the banned set. An unknown
// steamID is not banned.
func (s *PostgresStore) IsBanned(ctx context.Context, steamID string) (bool, error) {
	const query = `SELECT banned FROM players WHERE steam_id = $1`
	var banned bool
	err := s.pool.QueryRow(ctx, query, steamID).Scan(&banned)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking ban status for %q: %w", steamID, err)
	}
	return banned, nil
}

// GetAntiCheatPenalty reads the persisted anti-cheat penalty total for
// steamID (spec.md §4.7, §4.9). An unknown steamID has a zero penalty.
func (s *PostgresStore) GetAntiCheatPenalty(ctx context.Context, steamID string) (float64, error) {
	const query = `SELECT anticheat_penalty FROM players WHERE steam_id = $1`
	var penalty float64
	err := s.pool.QueryRow(ctx, query, steamID).Scan(&penalty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading anti-cheat penalty for %q: %w", steamID, err)
	}
	return penalty, nil
}

// AddAntiCheatPenalty adds delta to steamID's persisted penalty total.
func (s *PostgresStore) AddAntiCheatPenalty(ctx context.Context, steamID string, delta float64) error {
	const query = `UPDATE players SET anticheat_penalty = anticheat_penalty + $2 WHERE steam_id = $1`
	_, err := s.pool.Exec(ctx, query, steamID, delta)
	if err != nil {
		return fmt.Errorf("adding anti-cheat penalty for %q: %w", steamID, err)
	}
	return nil
}

// AddStatistic increments a named per-player counter (spec.md §4.9).
func (s *PostgresStore) AddStatistic(ctx context.Context, playerID uint32, key string, delta int64) error {
	const query = `
		INSERT INTO player_statistics (player_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, key) DO UPDATE SET value = player_statistics.value + EXCLUDED.value
	`
	_, err := s.pool.Exec(ctx, query, playerID, key, delta)
	if err != nil {
		return fmt.Errorf("adding statistic %q for player %d: %w", key, playerID, err)
	}
	return nil
}

// AddGlobalStatistic increments a named server-wide counter
// (spec.md §4.9).
func (s *PostgresStore) AddGlobalStatistic(ctx context.Context, key string, delta int64) error {
	const query = `
		INSERT INTO global_statistics (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = global_statistics.value + EXCLUDED.value
	`
	_, err := s.pool.Exec(ctx, query, key, delta)
	if err != nil {
		return fmt.Errorf("adding global statistic %q: %w", key, err)
	}
	return nil
}
