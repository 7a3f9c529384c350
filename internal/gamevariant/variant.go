// Package gamevariant defines the polymorphism seam spec.md §9 calls for:
// "Game-variant differences (opcode numbers, protobuf schemas, matching
// tables, player-state field set) are confined to (a) the codec/dispatch
// registry and (b) the player-state schema. Model this as a
// variant-tagged game trait/interface; the core engine is generic over
// it." Handlers and the shard loop depend only on Variant, never on a
// concrete game's wire types.
package gamevariant

import (
	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

// RankingMode distinguishes how RegisterRankingData combines a new score
// with the stored one (spec.md §4.5 ranking handler, supplemented from
// original_source/ — DS2's boards accumulate, DS3's take the max).
type RankingMode int

const (
	// RankingModeMax keeps the larger of the stored and submitted score.
	RankingModeMax RankingMode = iota
	// RankingModeAccumulate adds the submitted score to the stored one.
	RankingModeAccumulate
)

// Variant is implemented once per concrete game the shard can serve.
// A shard is configured with exactly one Variant for its lifetime.
type Variant interface {
	// Name identifies the variant for logging and config lookup.
	Name() string

	// Registry returns this variant's declarative opcode table
	// (spec.md §4.3).
	Registry() *message.Registry

	// ExtractObservations parses a variant-specific rolling status blob
	// into the generic sub-fields the core cares about
	// (spec.md §4.5 player-data handler, §3 PlayerState "Derived").
	ExtractObservations(raw []byte) (playerstate.Observations, error)

	// MatchingTableKey names the config.MatchingTable entry to use for a
	// given interaction kind (e.g. "summon", "invasion", "visitor",
	// "undead_match"); variants may rename or add kinds.
	MatchingTableKey(kind InteractionKind) string

	// RankingMode reports how this variant's ranking boards combine
	// scores.
	RankingMode() RankingMode
}

// InteractionKind names a matchmaking interaction the matching predicate
// is evaluated for (spec.md §4.5).
type InteractionKind int

const (
	InteractionSummon InteractionKind = iota
	InteractionInvasion
	InteractionVisitor
	InteractionUndeadMatch
)

// MatchingTableFor resolves the config.MatchingTable a variant names for
// kind, falling back to the zero table (which matches nothing useful) if
// absent, so callers can still operate without panicking.
func MatchingTableFor(v Variant, kind InteractionKind, tables map[string]config.MatchingTable) config.MatchingTable {
	return tables[v.MatchingTableKey(kind)]
}
