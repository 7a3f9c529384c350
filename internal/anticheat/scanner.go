package anticheat

import (
	"time"

	"github.com/TLeonardUK/ds3os-sub000/internal/config"
	"github.com/TLeonardUK/ds3os-sub000/internal/constants"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

// Finding is one trigger that fired during a scan.
type Finding struct {
	Trigger     string
	Explanation string
}

// Result is the outcome of one Scanner.Scan call (spec.md §4.7).
type Result struct {
	Fired []Finding

	// ShouldBan is true once AutoBan is enabled and the accumulated
	// penalty has crossed BanThreshold.
	ShouldBan bool

	// ShouldWarn is true when the penalty exceeds WarnThreshold and the
	// warn cooldown has elapsed.
	ShouldWarn bool
}

// Scanner evaluates a fixed trigger set against a session's player state
// on a periodic cadence (constants.AntiCheatScanInterval).
type Scanner struct {
	triggers []Trigger
	cfg      config.AntiCheatConfig
}

// NewScanner builds a Scanner from a trigger set and configured weights.
func NewScanner(cfg config.AntiCheatConfig, triggers ...Trigger) *Scanner {
	return &Scanner{triggers: triggers, cfg: cfg}
}

// Scan evaluates every trigger not already fired this session against p,
// accumulates penalty for newly fired ones, and reports whether a ban or
// a warning is now due. Scanning before the session has a complete status
// is a no-op, per spec.md §4.7 ("periodically per session ... when the
// player has complete status").
func (s *Scanner) Scan(now time.Time, p *playerstate.PlayerState) Result {
	var result Result
	if !p.HasCompleteStatus() {
		return result
	}

	for _, trigger := range s.triggers {
		name := trigger.Name()
		if p.AntiCheat.HasTriggered(name) {
			continue
		}
		fired, explanation := trigger.Scan(p)
		if !fired {
			continue
		}
		p.AntiCheat.MarkTriggered(name, trigger.Weight(s.cfg))
		result.Fired = append(result.Fired, Finding{Trigger: name, Explanation: explanation})
	}

	switch {
	case s.cfg.AutoBan && p.AntiCheat.Penalty >= s.cfg.BanThreshold:
		result.ShouldBan = true
	case p.AntiCheat.Penalty >= s.cfg.WarnThreshold && p.AntiCheat.ReadyToWarn(now, constants.AntiCheatWarnCooldown):
		result.ShouldWarn = true
	}

	return result
}
