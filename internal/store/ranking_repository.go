package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// RegisterScore upserts the final score for (boardID, characterID). The
// store never compares against the prior value — see the doc comment on
// Store.RegisterScore.
func (s *PostgresStore) RegisterScore(ctx context.Context, boardID uint32, entry RankingEntry) error {
	const query = `
		INSERT INTO rankings (board_id, player_id, character_id, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (board_id, character_id) DO UPDATE
		SET score = EXCLUDED.score, player_id = EXCLUDED.player_id
	`
	_, err := s.pool.Exec(ctx, query, boardID, entry.PlayerID, entry.CharacterID, entry.Score)
	if err != nil {
		return fmt.Errorf("registering score on board %d for character %d: %w", boardID, entry.CharacterID, err)
	}
	return nil
}

// GetRankings returns one page of a board ordered by descending score,
// ranked with RANK(): ties share a rank and the rank after a tie skips
// ahead (spec.md §4.9).
func (s *PostgresStore) GetRankings(ctx context.Context, boardID uint32, pageStart, pageSize uint32) ([]RankingEntry, error) {
	const query = `
		SELECT player_id, character_id, score,
		       RANK() OVER (ORDER BY score DESC) AS rank
		FROM rankings
		WHERE board_id = $1
		ORDER BY score DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := s.pool.Query(ctx, query, boardID, pageStart, pageSize)
	if err != nil {
		return nil, fmt.Errorf("listing rankings for board %d: %w", boardID, err)
	}
	defer rows.Close()

	var out []RankingEntry
	for rows.Next() {
		var e RankingEntry
		if err := rows.Scan(&e.PlayerID, &e.CharacterID, &e.Score, &e.Rank); err != nil {
			return nil, fmt.Errorf("scanning ranking row for board %d: %w", boardID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rankings for board %d: %w", boardID, err)
	}
	return out, nil
}

// GetCharacterRanking returns characterID's own row and rank on boardID.
// The bool is false when the character has no score registered yet.
func (s *PostgresStore) GetCharacterRanking(ctx context.Context, boardID, characterID uint32) (RankingEntry, bool, error) {
	const query = `
		SELECT player_id, character_id, score, rank
		FROM (
			SELECT player_id, character_id, score,
			       RANK() OVER (ORDER BY score DESC) AS rank
			FROM rankings
			WHERE board_id = $1
		) ranked
		WHERE character_id = $2
	`
	var e RankingEntry
	err := s.pool.QueryRow(ctx, query, boardID, characterID).Scan(&e.PlayerID, &e.CharacterID, &e.Score, &e.Rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return RankingEntry{}, false, nil
	}
	if err != nil {
		return RankingEntry{}, false, fmt.Errorf("finding ranking on board %d for character %d: %w", boardID, characterID, err)
	}
	return e, true, nil
}

// GetRankingCount returns the number of characters registered on boardID.
func (s *PostgresStore) GetRankingCount(ctx context.Context, boardID uint32) (uint32, error) {
	const query = `SELECT count(*) FROM rankings WHERE board_id = $1`
	var count uint32
	if err := s.pool.QueryRow(ctx, query, boardID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting rankings for board %d: %w", boardID, err)
	}
	return count, nil
}
