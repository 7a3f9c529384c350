// Package store defines the durable-store external collaborator
// (spec.md §4.9) and its PostgreSQL-backed implementation, grounded on
// internal/db/*.go's one-repository-per-aggregate layout
// (character_repository.go, clan_repository.go, ...).
package store

import (
	"context"
	"time"
)

// QuickMatchMode distinguishes the two undead-match ranked pools
// (spec.md §3 Character "quickmatch_duel_rank/xp" vs
// "quickmatch_brawl_rank/xp"); each tracks its own rank/xp pair.
type QuickMatchMode int

const (
	QuickMatchDuel QuickMatchMode = iota
	QuickMatchBrawl
)

// CharacterRecord is the durable projection of a character used for
// find/create_or_update/update_quickmatch_rank (spec.md §4.9). Data is the
// opaque client-authored character blob (spec.md §3 "Character.data");
// the store never interprets it.
type CharacterRecord struct {
	CharacterID uint32
	PlayerID    uint32
	Name        string
	Data        []byte

	QuickmatchDuelRank   uint32
	QuickmatchDuelXP     uint32
	QuickmatchBrawlRank  uint32
	QuickmatchBrawlXP    uint32

	UpdatedAt time.Time
}

// BlobRecord is one append+trim row shared by BloodMessage, Bloodstain,
// and Ghost (spec.md §4.9): an opaque, already-sanitized payload scoped
// to an area and, for variants with a sub-grid, a cell within it
// (spec.md §4.6 AreaKey), newest-first on scan.
type BlobRecord struct {
	ID        uint32
	AreaID    uint32
	CellID    uint32
	PlayerID  uint32
	Payload   []byte
	CreatedAt time.Time

	// RatingGood/RatingPoor are populated only for BloodMessage rows
	// (spec.md §3 BloodMessage "rating_good, rating_poor"); Bloodstain and
	// Ghost rows leave these at zero.
	RatingGood uint32
	RatingPoor uint32
}

// RankingEntry is one row of a ranking board.
type RankingEntry struct {
	PlayerID    uint32
	CharacterID uint32
	Score       int64
	Rank        uint32
}

// Store is the durable-store interface the shard core depends on
// (spec.md §4.9). All operations are synchronous from the core's
// viewpoint; an implementation may batch internally.
type Store interface {
	// FindOrCreatePlayer idempotently resolves a steam_id to a player_id,
	// creating a new Player row on first sight.
	FindOrCreatePlayer(ctx context.Context, steamID string) (playerID uint32, err error)

	BanPlayer(ctx context.Context, steamID string) error
	IsBanned(ctx context.Context, steamID string) (bool, error)

	GetAntiCheatPenalty(ctx context.Context, steamID string) (float64, error)
	AddAntiCheatPenalty(ctx context.Context, steamID string, delta float64) error

	AddStatistic(ctx context.Context, playerID uint32, key string, delta int64) error
	AddGlobalStatistic(ctx context.Context, key string, delta int64) error

	FindCharacter(ctx context.Context, characterID uint32) (*CharacterRecord, error)
	CreateOrUpdateCharacter(ctx context.Context, rec CharacterRecord) error
	// UpdateQuickmatchRank updates one mode's rank/xp pair, leaving the
	// other mode and Data untouched.
	UpdateQuickmatchRank(ctx context.Context, characterID uint32, mode QuickMatchMode, rank, xp uint32) error

	CreateBloodMessage(ctx context.Context, rec BlobRecord) (id uint32, err error)
	FindBloodMessages(ctx context.Context, areaID uint32, limit int) ([]BlobRecord, error)
	TrimBloodMessages(ctx context.Context, areaID uint32, keep int) error
	// UpdateBloodMessageRating persists the good/poor counters after an
	// evaluation (spec.md §4.5 "increment the appropriate counter;
	// persist").
	UpdateBloodMessageRating(ctx context.Context, id uint32, good, poor uint32) error
	// DeleteBloodMessage removes a row outright (spec.md §4.5
	// "removes from cache and store").
	DeleteBloodMessage(ctx context.Context, id uint32) error

	CreateBloodstain(ctx context.Context, rec BlobRecord) (id uint32, err error)
	FindBloodstains(ctx context.Context, areaID uint32, limit int) ([]BlobRecord, error)
	TrimBloodstains(ctx context.Context, areaID uint32, keep int) error

	CreateGhost(ctx context.Context, rec BlobRecord) (id uint32, err error)
	FindGhosts(ctx context.Context, areaID uint32, limit int) ([]BlobRecord, error)
	TrimGhosts(ctx context.Context, areaID uint32, keep int) error

	// RegisterScore idempotently upserts the final score for
	// (boardID, characterID); combining a new submission with any
	// existing score (max-of vs accumulate, spec.md §9, SPEC_FULL §5
	// item 2) is the ranking handler's job, not the store's — the store
	// only ever persists the value it is given.
	RegisterScore(ctx context.Context, boardID uint32, entry RankingEntry) error
	GetRankings(ctx context.Context, boardID uint32, pageStart, pageSize uint32) ([]RankingEntry, error)
	GetCharacterRanking(ctx context.Context, boardID, characterID uint32) (RankingEntry, bool, error)
	GetRankingCount(ctx context.Context, boardID uint32) (uint32, error)
}
