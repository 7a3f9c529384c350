package ds3

import (
	"github.com/TLeonardUK/ds3os-sub000/internal/matching"
	"github.com/TLeonardUK/ds3os-sub000/internal/playerstate"
)

// anticheatFlagClientFlagged is the anticheat_data bit DS3_PlayerState.h
// calls out (0x1770); its presence is an observed client self-report, not
// a server-derived signal (DESIGN.md Open Question decision 2).
const anticheatFlagClientFlagged uint32 = 0x1770

// statusBlob is the wire shape of the rolling status RequestUpdatePlayerStatus
// carries (DS3_PlayerState.h's rolling PlayerStatus struct, reduced to the
// sub-fields the core inspects). It round-trips through PlayerState.RawStatus
// verbatim; ExtractObservations only reads it.
type statusBlob struct {
	CharacterName  string
	AreaID         uint32
	IsInvadable    bool
	SoulLevel      int32
	WeaponLevel    int32
	VisitorPool    uint32
	LitBonfires    []uint32
	AntiCheatFlags uint32
}

func (s *statusBlob) marshal() []byte {
	w := &wireWriter{}
	w.string(s.CharacterName)
	w.uint32(s.AreaID)
	w.bool(s.IsInvadable)
	w.int32(s.SoulLevel)
	w.int32(s.WeaponLevel)
	w.uint32(s.VisitorPool)
	w.uint32Slice(s.LitBonfires)
	w.uint32(s.AntiCheatFlags)
	return w.buf
}

func (s *statusBlob) unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if s.CharacterName, err = r.string(); err != nil {
		return err
	}
	if s.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if s.IsInvadable, err = r.boolean(); err != nil {
		return err
	}
	if s.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if s.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	if s.VisitorPool, err = r.uint32(); err != nil {
		return err
	}
	if s.LitBonfires, err = r.uint32Slice(); err != nil {
		return err
	}
	if s.AntiCheatFlags, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// extractObservations parses raw (a RequestUpdatePlayerStatus.Status
// payload) into the generic sub-fields playerstate.PlayerState merges.
func extractObservations(raw []byte) (playerstate.Observations, error) {
	var blob statusBlob
	if err := blob.unmarshal(raw); err != nil {
		return playerstate.Observations{}, err
	}
	return playerstate.Observations{
		CharacterName:    blob.CharacterName,
		CurrentAreaID:    blob.AreaID,
		IsInvadable:      blob.IsInvadable,
		SoulLevel:        blob.SoulLevel,
		MaxWeaponLevel:   blob.WeaponLevel,
		VisitorPool:      matching.VisitorPool(blob.VisitorPool),
		LitBonfires:      blob.LitBonfires,
		AntiCheatFlagged: blob.AntiCheatFlags&anticheatFlagClientFlagged != 0,
	}, nil
}
