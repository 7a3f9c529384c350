// Package playerstate holds the per-player schema (spec.md §3 PlayerState)
// that is common across every game variant, plus the rolling-status merge
// and anti-cheat bookkeeping handlers operate on. Variant-specific field
// interpretation lives behind the gamevariant.Variant seam
// (spec.md §9 "Inheritance in source, variants in target").
package playerstate

import (
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/matching"
)

// AntiCheatState tracks penalty accumulation for one session
// (spec.md §3, §4.7).
type AntiCheatState struct {
	Penalty              float64
	TriggeredThisSession map[string]struct{}
	LoadedFromStore      bool

	// LastWarnAt is when a warning management message was last pushed to
	// this session, gating the ≈60s cooldown (spec.md §4.7).
	LastWarnAt time.Time
}

// NewAntiCheatState returns a zeroed AntiCheatState ready for use.
func NewAntiCheatState() AntiCheatState {
	return AntiCheatState{TriggeredThisSession: make(map[string]struct{})}
}

// HasTriggered reports whether name already fired this session
// (spec.md §4.7 "A trigger fires at most once per session").
func (a *AntiCheatState) HasTriggered(name string) bool {
	_, ok := a.TriggeredThisSession[name]
	return ok
}

// MarkTriggered records that trigger name fired this session and adds its
// weight to the accumulated penalty.
func (a *AntiCheatState) MarkTriggered(name string, weight float64) {
	a.TriggeredThisSession[name] = struct{}{}
	a.Penalty += weight
}

// ReadyToWarn reports whether the warn cooldown has elapsed since
// LastWarnAt, and records now as the new LastWarnAt if so.
func (a *AntiCheatState) ReadyToWarn(now time.Time, cooldown time.Duration) bool {
	if !a.LastWarnAt.IsZero() && now.Sub(a.LastWarnAt) < cooldown {
		return false
	}
	a.LastWarnAt = now
	return true
}

// Observations are the typed sub-fields the core inspects inside the
// otherwise-opaque rolling status blob (spec.md §3 PlayerState "Derived").
// A gamevariant.Variant extracts these from the variant-specific wire
// encoding; the core never parses the blob itself.
type Observations struct {
	CharacterName  string
	CurrentAreaID  uint32
	IsInvadable    bool
	SoulLevel      int32
	MaxWeaponLevel int32
	VisitorPool    matching.VisitorPool
	LitBonfires    []uint32
	AntiCheatFlagged bool
}

// PlayerState is one connected player's identity, matching inputs, and
// rolling status (spec.md §3).
type PlayerState struct {
	SteamID       string
	PlayerID      uint32
	CharacterID   uint32
	CharacterName string

	SoulLevel      int32
	MaxWeaponLevel int32
	IsInvadable    bool
	VisitorPool    matching.VisitorPool
	CurrentAreaID  uint32

	// RawStatus is the most recently merged opaque status blob, stored
	// verbatim for persistence (spec.md §4.5 player-data handler).
	RawStatus []byte

	LitBonfires map[uint32]struct{}
	AntiCheat   AntiCheatState

	hasCompleteStatus bool
	flagged           bool
}

// New returns a PlayerState for a freshly identified player.
func New(steamID string, playerID uint32) *PlayerState {
	return &PlayerState{
		SteamID:     steamID,
		PlayerID:    playerID,
		LitBonfires: make(map[uint32]struct{}),
		AntiCheat:   NewAntiCheatState(),
	}
}

// ApplyObservations merges one variant-extracted Observations snapshot.
// Repeated fields (lit bonfires) union rather than replace, matching
// spec.md §4.5's "repeated fields with non-empty new contents replace, not
// append" rule applied at the RawStatus level while bonfires accumulate
// monotonically. Returns the bonfire ids newly lit by this update.
func (p *PlayerState) ApplyObservations(obs Observations) []uint32 {
	if obs.CharacterName != "" {
		p.CharacterName = obs.CharacterName
	}
	p.CurrentAreaID = obs.CurrentAreaID
	p.IsInvadable = obs.IsInvadable
	p.SoulLevel = obs.SoulLevel
	p.MaxWeaponLevel = obs.MaxWeaponLevel
	p.VisitorPool = obs.VisitorPool
	if obs.AntiCheatFlagged {
		p.markFlagged()
	}

	var newlyLit []uint32
	for _, id := range obs.LitBonfires {
		if _, already := p.LitBonfires[id]; already {
			continue
		}
		p.LitBonfires[id] = struct{}{}
		if p.hasCompleteStatus {
			newlyLit = append(newlyLit, id)
		}
	}

	p.hasCompleteStatus = true
	return newlyLit
}

// markFlagged exists purely so AntiCheatFlagged has a stable observation
// point; the anti-cheat package reads it back via Flagged().
func (p *PlayerState) markFlagged() {
	p.flagged = true
}

// Flagged reports whether the client's own in-client detection flag has
// ever been observed in an uploaded status blob (spec.md §4.7).
func (p *PlayerState) Flagged() bool {
	return p.flagged
}

// HasCompleteStatus reports whether at least one full status update has
// been merged, gating both anti-cheat evaluation and bonfire-lit
// notifications (spec.md §4.5, §4.7: "suppressed until the session has
// seen its first complete status").
func (p *PlayerState) HasCompleteStatus() bool {
	return p.hasCompleteStatus
}

// Candidate projects this PlayerState into the small struct the matching
// predicate needs.
func (p *PlayerState) Candidate() matching.Candidate {
	return matching.Candidate{
		SoulLevel:   p.SoulLevel,
		WeaponLevel: p.MaxWeaponLevel,
		IsInvadable: p.IsInvadable,
		VisitorPool: p.VisitorPool,
	}
}
