// Package ds3 is the gamevariant.Variant implementation for Dark Souls 3,
// grounded directly on Source/Server.DarkSouls3/... in original_source/:
// DS3_BootManager.cpp, DS3_SignManager.cpp and DS3_RankingManager.cpp name
// the opcodes and fields this package's Registry and ExtractObservations
// reproduce.
package ds3

import (
	"github.com/TLeonardUK/ds3os-sub000/internal/gamevariant"
	"github.com/TLeonardUK/ds3os-sub000/internal/netcode/message"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

// Variant implements gamevariant.Variant for Dark Souls 3. DS3_RankingManager.cpp
// keeps the maximum of the stored and submitted score (RankingModeMax; the
// accumulating alternative is described in SPEC_FULL §5 item 2, and no
// variant in this repository uses it).
type Variant struct {
	registry *message.Registry
}

// New returns the DS3 game variant, building its opcode registry once.
func New() *Variant {
	return &Variant{registry: registry()}
}

func (v *Variant) Name() string {
	return "dark-souls-3"
}

func (v *Variant) Registry() *message.Registry {
	return v.registry
}

func (v *Variant) ExtractObservations(raw []byte) (playerstate.Observations, error) {
	return extractObservations(raw)
}

func (v *Variant) MatchingTableKey(kind gamevariant.InteractionKind) string {
	switch kind {
	case gamevariant.InteractionSummon:
		return "summon"
	case gamevariant.InteractionInvasion:
		return "invasion"
	case gamevariant.InteractionVisitor:
		return "visitor"
	case gamevariant.InteractionUndeadMatch:
		return "undead_match"
	default:
		return ""
	}
}

func (v *Variant) RankingMode() gamevariant.RankingMode {
	return gamevariant.RankingModeMax
}

var _ gamevariant.Variant = (*Variant)(nil)
