package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// FindCharacter loads a character by id, returning (nil, nil) if it does
// not exist (spec.md §4.9), matching internal/db/character_repository.go's
// "not found is not an error" convention.
func (s *PostgresStore) FindCharacter(ctx context.Context, characterID uint32) (*CharacterRecord, error) {
	const query = `
		SELECT character_id, player_id, name, data,
		       quickmatch_duel_rank, quickmatch_duel_xp,
		       quickmatch_brawl_rank, quickmatch_brawl_xp,
		       updated_at
		FROM characters
		WHERE character_id = $1
	`
	var rec CharacterRecord
	err := s.pool.QueryRow(ctx, query, characterID).Scan(
		&rec.CharacterID, &rec.PlayerID, &rec.Name, &rec.Data,
		&rec.QuickmatchDuelRank, &rec.QuickmatchDuelXP,
		&rec.QuickmatchBrawlRank, &rec.QuickmatchBrawlXP,
		&rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding character %d: %w", characterID, err)
	}
	return &rec, nil
}

// CreateOrUpdateCharacter idempotently upserts a character row
// (spec.md §4.9 "Idempotent upserts for Player, Character, Ranking"). Rank
// tuples are intentionally not written here: the quickmatch handler updates
// them independently via UpdateQuickmatchRank so a plain character-blob
// upload never clobbers rank progress earned since the last one.
func (s *PostgresStore) CreateOrUpdateCharacter(ctx context.Context, rec CharacterRecord) error {
	const query = `
		INSERT INTO characters (character_id, player_id, name, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (character_id) DO UPDATE
		SET name = EXCLUDED.name, data = EXCLUDED.data, updated_at = now()
	`
	_, err := s.pool.Exec(ctx, query, rec.CharacterID, rec.PlayerID, rec.Name, rec.Data)
	if err != nil {
		return fmt.Errorf("creating or updating character %d: %w", rec.CharacterID, err)
	}
	return nil
}

// UpdateQuickmatchRank updates one mode's rank/xp tuple, the hot path the
// quickmatch handler calls after every ranked match (spec.md §4.9
// "character rank tuple read/update"; DESIGN.md Open Question decision 3
// clamps rank before this is called).
func (s *PostgresStore) UpdateQuickmatchRank(ctx context.Context, characterID uint32, mode QuickMatchMode, rank, xp uint32) error {
	var query string
	switch mode {
	case QuickMatchDuel:
		query = `UPDATE characters SET quickmatch_duel_rank = $2, quickmatch_duel_xp = $3, updated_at = now() WHERE character_id = $1`
	case QuickMatchBrawl:
		query = `UPDATE characters SET quickmatch_brawl_rank = $2, quickmatch_brawl_xp = $3, updated_at = now() WHERE character_id = $1`
	default:
		return fmt.Errorf("updating quickmatch rank for character %d: unknown mode %d", characterID, mode)
	}
	_, err := s.pool.Exec(ctx, query, characterID, rank, xp)
	if err != nil {
		return fmt.Errorf("updating quickmatch rank for character %d: %w", characterID, err)
	}
	return nil
}
