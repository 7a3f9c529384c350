package ds3

// Message bodies mirror the fields DS3_BootManager.cpp, DS3_SignManager.cpp
// and DS3_RankingManager.cpp read off their protobuf requests/responses;
// field names follow the .proto naming the original logs
// (DS2_LogProtobufsHook.cpp) rather than the C++ getter names.

// RequestWaitForUserLogin is sent once per connection to complete login
// (spec.md §4.5 boot handler).
type RequestWaitForUserLogin struct {
	SteamID string
}

func (m *RequestWaitForUserLogin) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.string(m.SteamID)
	return w.buf, nil
}

func (m *RequestWaitForUserLogin) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	steamID, err := r.string()
	if err != nil {
		return err
	}
	m.SteamID = steamID
	return nil
}

// RequestWaitForUserLoginResponse carries the player's numeric id and ban
// flag. The boot handler leaves AnnouncementMsg empty; ban/warning text is
// delivered by AnnounceMessageListResponse instead.
type RequestWaitForUserLoginResponse struct {
	PlayerID        uint32
	Banned          bool
	AnnouncementMsg string
}

func (m *RequestWaitForUserLoginResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.PlayerID)
	w.bool(m.Banned)
	w.string(m.AnnouncementMsg)
	return w.buf, nil
}

func (m *RequestWaitForUserLoginResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.PlayerID, err = r.uint32(); err != nil {
		return err
	}
	if m.Banned, err = r.boolean(); err != nil {
		return err
	}
	if m.AnnouncementMsg, err = r.string(); err != nil {
		return err
	}
	return nil
}

// RequestGetAnnounceMessageList asks for the server's MOTD/changelog
// entries (spec.md §4.5 boot handler).
type RequestGetAnnounceMessageList struct {
	LastNoticeIndex int32
	LastChangeIndex int32
}

func (m *RequestGetAnnounceMessageList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.int32(m.LastNoticeIndex)
	w.int32(m.LastChangeIndex)
	return w.buf, nil
}

func (m *RequestGetAnnounceMessageList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.LastNoticeIndex, err = r.int32(); err != nil {
		return err
	}
	if m.LastChangeIndex, err = r.int32(); err != nil {
		return err
	}
	return nil
}

// AnnounceMessageListResponse carries notice/change text entries.
type AnnounceMessageListResponse struct {
	Notices []string
	Changes []string
}

func (m *AnnounceMessageListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(uint32(len(m.Notices)))
	for _, n := range m.Notices {
		w.string(n)
	}
	w.uint32(uint32(len(m.Changes)))
	for _, c := range m.Changes {
		w.string(c)
	}
	return w.buf, nil
}

func (m *AnnounceMessageListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	n, err := r.uint32()
	if err != nil {
		return err
	}
	m.Notices = make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := r.string()
		if err != nil {
			return err
		}
		m.Notices = append(m.Notices, s)
	}
	c, err := r.uint32()
	if err != nil {
		return err
	}
	m.Changes = make([]string, 0, c)
	for i := uint32(0); i < c; i++ {
		s, err := r.string()
		if err != nil {
			return err
		}
		m.Changes = append(m.Changes, s)
	}
	return nil
}

// PlayerInfoUploadConfigPush tells the client how often/what to upload in
// its rolling status (DS3_BootManager.cpp composes this once at login).
type PlayerInfoUploadConfigPush struct {
	UploadIntervalSeconds uint32
}

func (m *PlayerInfoUploadConfigPush) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.UploadIntervalSeconds)
	return w.buf, nil
}

func (m *PlayerInfoUploadConfigPush) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.UploadIntervalSeconds = v
	return nil
}

// RequestUpdatePlayerStatus carries the client's rolling status blob
// (spec.md §3 PlayerState "Derived", §4.5 player-data handler). The blob
// itself is opaque to the core; ExtractObservations in observations.go
// parses the sub-fields it cares about out of the same encoding.
type RequestUpdatePlayerStatus struct {
	Status []byte
}

func (m *RequestUpdatePlayerStatus) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.bytes(m.Status)
	return w.buf, nil
}

func (m *RequestUpdatePlayerStatus) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	status, err := r.bytes()
	if err != nil {
		return err
	}
	m.Status = status
	return nil
}

// RequestUpdatePlayerStatusResponse is an empty acknowledgement.
type RequestUpdatePlayerStatusResponse struct{}

func (m *RequestUpdatePlayerStatusResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestUpdatePlayerStatusResponse) Unmarshal([]byte) error   { return nil }

// RequestGetSignList asks for every cached SummonSign in the named areas
// matching the caller's matching parameters (spec.md §4.5 sign handler,
// §8 scenario 2).
type RequestGetSignList struct {
	AreaIDs     []uint32
	SoulLevel   int32
	WeaponLevel int32
	Password    string
}

func (m *RequestGetSignList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.AreaIDs)
	w.int32(m.SoulLevel)
	w.int32(m.WeaponLevel)
	w.string(m.Password)
	return w.buf, nil
}

func (m *RequestGetSignList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if m.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	if m.Password, err = r.string(); err != nil {
		return err
	}
	return nil
}

// SignListResponse carries the matched sign entries, each entry's
// player-authored payload kept opaque (validated by internal/sanitize
// before caching, never parsed here).
type SignListResponse struct {
	SignIDs  []uint32
	Payloads [][]byte
}

func (m *SignListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.SignIDs)
	w.bytesSlice(m.Payloads)
	return w.buf, nil
}

func (m *SignListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.SignIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Payloads, err = r.bytesSlice(); err != nil {
		return err
	}
	return nil
}

// SignType distinguishes white (coop) from red (invasion) summon signs
// (DS3_SignManager.cpp's CanMatchWith: "SignType == SignType_RedSoapstone
// ? Config.DisableInvasions : Config.DisableCoop"), matched against
// spec.md §3/§4.5's explicit "type" field on CreateSign/can_match.
type SignType uint32

const (
	SignTypeWhiteSoapstone SignType = iota
	SignTypeRedSoapstone
)

// RequestCreateSign asks the sign handler to cache a new SummonSign
// (spec.md §4.5 "CreateSign").
type RequestCreateSign struct {
	AreaID      uint32
	CellID      uint32
	Type        SignType
	SoulLevel   int32
	WeaponLevel int32
	Password    string
	Payload     []byte
}

func (m *RequestCreateSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.CellID)
	w.uint32(uint32(m.Type))
	w.int32(m.SoulLevel)
	w.int32(m.WeaponLevel)
	w.string(m.Password)
	w.bytes(m.Payload)
	return w.buf, nil
}

func (m *RequestCreateSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.CellID, err = r.uint32(); err != nil {
		return err
	}
	signType, err := r.uint32()
	if err != nil {
		return err
	}
	m.Type = SignType(signType)
	if m.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if m.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	if m.Password, err = r.string(); err != nil {
		return err
	}
	if m.Payload, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// CreateSignResponse returns the newly assigned sign id.
type CreateSignResponse struct {
	SignID uint32
}

func (m *CreateSignResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SignID)
	return w.buf, nil
}

func (m *CreateSignResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.SignID = v
	return nil
}

// RequestUpdateSign carries an existing sign's current matching parameters
// (DS3_SignManager.cpp "RequestUpdateSign"). The sign handler treats it as
// a keepalive and does not apply them to the stored sign.
type RequestUpdateSign struct {
	SignID      uint32
	SoulLevel   int32
	WeaponLevel int32
	Password    string
}

func (m *RequestUpdateSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SignID)
	w.int32(m.SoulLevel)
	w.int32(m.WeaponLevel)
	w.string(m.Password)
	return w.buf, nil
}

func (m *RequestUpdateSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.SignID, err = r.uint32(); err != nil {
		return err
	}
	if m.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if m.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	if m.Password, err = r.string(); err != nil {
		return err
	}
	return nil
}

// RequestUpdateSignResponse is an empty acknowledgement
// (DS3_SignManager.cpp's Handle_RequestUpdateSign: "not sure what purpose
// this serves really other than saying message-recieved. Client doesn't
// work without it though.").
type RequestUpdateSignResponse struct{}

func (m *RequestUpdateSignResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestUpdateSignResponse) Unmarshal([]byte) error   { return nil }

// RequestRemoveSign withdraws a previously created sign.
type RequestRemoveSign struct {
	SignID uint32
}

func (m *RequestRemoveSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SignID)
	return w.buf, nil
}

func (m *RequestRemoveSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.SignID = v
	return nil
}

// RequestRemoveSignResponse is an empty acknowledgement, required by the
// client the same way RequestUpdateSignResponse is.
type RequestRemoveSignResponse struct{}

func (m *RequestRemoveSignResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestRemoveSignResponse) Unmarshal([]byte) error   { return nil }

// RequestSummonSign asks to begin a summon through an existing sign
// (spec.md §8 scenario 2).
type RequestSummonSign struct {
	SignID uint32
}

func (m *RequestSummonSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SignID)
	return w.buf, nil
}

func (m *RequestSummonSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.SignID = v
	return nil
}

// RequestSummonSignResponse acknowledges the summon attempt was queued.
type RequestSummonSignResponse struct {
	Accepted bool
}

func (m *RequestSummonSignResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.bool(m.Accepted)
	return w.buf, nil
}

func (m *RequestSummonSignResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.boolean()
	if err != nil {
		return err
	}
	m.Accepted = v
	return nil
}

// RequestRejectSign lets a sign's owner decline an incoming summon.
type RequestRejectSign struct {
	SignID     uint32
	SummonerID uint32
}

func (m *RequestRejectSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SignID)
	w.uint32(m.SummonerID)
	return w.buf, nil
}

func (m *RequestRejectSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.SignID, err = r.uint32(); err != nil {
		return err
	}
	if m.SummonerID, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// RequestRejectSignResponse is an empty acknowledgement, required by the
// client the same way RequestUpdateSignResponse is.
type RequestRejectSignResponse struct{}

func (m *RequestRejectSignResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestRejectSignResponse) Unmarshal([]byte) error   { return nil }

// PushRequestSummonSign is pushed to a sign's owner to notify them they
// are being summoned (spec.md §8 scenario 2).
type PushRequestSummonSign struct {
	SignID          uint32
	BeingSummonedBy uint32
}

func (m *PushRequestSummonSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SignID)
	w.uint32(m.BeingSummonedBy)
	return w.buf, nil
}

func (m *PushRequestSummonSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.SignID, err = r.uint32(); err != nil {
		return err
	}
	if m.BeingSummonedBy, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// PushRequestRejectSign is pushed to the pending summoner of a sign when
// the summon is declined — either because the owner rejected it outright
// (Handle_RequestRejectSign) or because the sign was already gone/already
// being summoned by the time RequestSummonSign arrived
// (Handle_RequestSummonSign's failure path). Fields follow
// DS3_Frpg2RequestMessage::PushRequestRejectSign's unknown_2/sign_id;
// unknown_2 is always set to 1 by the original, so it's surfaced here as
// a plain Rejected bool rather than carrying the raw constant forward.
type PushRequestRejectSign struct {
	Rejected bool
	SignID   uint32
}

func (m *PushRequestRejectSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.bool(m.Rejected)
	w.uint32(m.SignID)
	return w.buf, nil
}

func (m *PushRequestRejectSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.Rejected, err = r.boolean(); err != nil {
		return err
	}
	if m.SignID, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// PushRequestRemoveSign is pushed to every session holding a stale
// reference to a sign once it is gone (owner disconnect, consumption, or
// explicit removal; spec.md §8 scenario 2).
type PushRequestRemoveSign struct {
	SignID uint32
}

func (m *PushRequestRemoveSign) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SignID)
	return w.buf, nil
}

func (m *PushRequestRemoveSign) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.SignID = v
	return nil
}

// RequestRegisterRankingData submits a score to a named leaderboard
// (spec.md §4.5 ranking handler).
type RequestRegisterRankingData struct {
	BoardID uint32
	Score   int64
	Data    []byte
}

func (m *RequestRegisterRankingData) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.BoardID)
	w.int64(m.Score)
	w.bytes(m.Data)
	return w.buf, nil
}

func (m *RequestRegisterRankingData) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.BoardID, err = r.uint32(); err != nil {
		return err
	}
	if m.Score, err = r.int64(); err != nil {
		return err
	}
	if m.Data, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// RegisterRankingDataResponse is an empty acknowledgement.
type RegisterRankingDataResponse struct{}

func (m *RegisterRankingDataResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RegisterRankingDataResponse) Unmarshal([]byte) error   { return nil }

// RequestGetRankingData asks for a page of a leaderboard.
type RequestGetRankingData struct {
	BoardID   uint32
	PageStart uint32
	PageSize  uint32
}

func (m *RequestGetRankingData) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.BoardID)
	w.uint32(m.PageStart)
	w.uint32(m.PageSize)
	return w.buf, nil
}

func (m *RequestGetRankingData) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.BoardID, err = r.uint32(); err != nil {
		return err
	}
	if m.PageStart, err = r.uint32(); err != nil {
		return err
	}
	if m.PageSize, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// GetRankingDataResponse carries a page of ranked entries.
type GetRankingDataResponse struct {
	PlayerIDs []uint32
	Scores    []int64
	Ranks     []uint32
}

func (m *GetRankingDataResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.PlayerIDs)
	w.uint32(uint32(len(m.Scores)))
	for _, s := range m.Scores {
		w.int64(s)
	}
	w.uint32Slice(m.Ranks)
	return w.buf, nil
}

func (m *GetRankingDataResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.PlayerIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	n, err := r.uint32()
	if err != nil {
		return err
	}
	m.Scores = make([]int64, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := r.int64()
		if err != nil {
			return err
		}
		m.Scores = append(m.Scores, v)
	}
	if m.Ranks, err = r.uint32Slice(); err != nil {
		return err
	}
	return nil
}

// RequestGetCharacterRankingData asks for the caller's own entry on a
// leaderboard (DS3_RankingManager.cpp "RequestGetCharacterRankingData").
type RequestGetCharacterRankingData struct {
	BoardID     uint32
	CharacterID uint32
}

func (m *RequestGetCharacterRankingData) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.BoardID)
	w.uint32(m.CharacterID)
	return w.buf, nil
}

func (m *RequestGetCharacterRankingData) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.BoardID, err = r.uint32(); err != nil {
		return err
	}
	if m.CharacterID, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// GetCharacterRankingDataResponse carries the caller's own ranking entry,
// zero-valued if the character has not registered a score.
type GetCharacterRankingDataResponse struct {
	Score int64
	Rank  uint32
	Found bool
}

func (m *GetCharacterRankingDataResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.int64(m.Score)
	w.uint32(m.Rank)
	w.bool(m.Found)
	return w.buf, nil
}

func (m *GetCharacterRankingDataResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.Score, err = r.int64(); err != nil {
		return err
	}
	if m.Rank, err = r.uint32(); err != nil {
		return err
	}
	if m.Found, err = r.boolean(); err != nil {
		return err
	}
	return nil
}

// RequestCountRankingData asks how many characters are registered on a
// leaderboard (DS3_RankingManager.cpp "RequestCountRankingData").
type RequestCountRankingData struct {
	BoardID uint32
}

func (m *RequestCountRankingData) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.BoardID)
	return w.buf, nil
}

func (m *RequestCountRankingData) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.BoardID = v
	return nil
}

// CountRankingDataResponse carries the number of registered characters.
type CountRankingDataResponse struct {
	Count uint32
}

func (m *CountRankingDataResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.Count)
	return w.buf, nil
}

func (m *CountRankingDataResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.Count = v
	return nil
}

// RequestUpdatePlayerCharacter persists an opaque character blob
// (DS3_PlayerDataManager.cpp "RequestUpdatePlayerCharacter"; spec.md §4.5
// player-data handler).
type RequestUpdatePlayerCharacter struct {
	CharacterID uint32
	Data        []byte
}

func (m *RequestUpdatePlayerCharacter) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.CharacterID)
	w.bytes(m.Data)
	return w.buf, nil
}

func (m *RequestUpdatePlayerCharacter) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.CharacterID, err = r.uint32(); err != nil {
		return err
	}
	if m.Data, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// RequestUpdatePlayerCharacterResponse is an empty acknowledgement.
type RequestUpdatePlayerCharacterResponse struct{}

func (m *RequestUpdatePlayerCharacterResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestUpdatePlayerCharacterResponse) Unmarshal([]byte) error   { return nil }

// RequestCreateBloodMessage submits a new blood message for caching/
// persistence (DS3_BloodMessageManager.cpp "Handle_RequestCreateBloodMessage").
type RequestCreateBloodMessage struct {
	AreaID  uint32
	CellID  uint32
	Payload []byte
}

func (m *RequestCreateBloodMessage) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.CellID)
	w.bytes(m.Payload)
	return w.buf, nil
}

func (m *RequestCreateBloodMessage) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.CellID, err = r.uint32(); err != nil {
		return err
	}
	if m.Payload, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// CreateBloodMessageResponse returns the newly assigned message id.
type CreateBloodMessageResponse struct {
	MessageID uint32
}

func (m *CreateBloodMessageResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.MessageID)
	return w.buf, nil
}

func (m *CreateBloodMessageResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.MessageID = v
	return nil
}

// RequestGetBloodMessageList asks for a random sample of cached messages
// per requested area (spec.md §4.5 blood-message handler).
type RequestGetBloodMessageList struct {
	AreaIDs []uint32
	MaxPerArea uint32
}

func (m *RequestGetBloodMessageList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.AreaIDs)
	w.uint32(m.MaxPerArea)
	return w.buf, nil
}

func (m *RequestGetBloodMessageList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.MaxPerArea, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// GetBloodMessageListResponse carries the sampled messages.
type GetBloodMessageListResponse struct {
	MessageIDs []uint32
	PlayerIDs  []uint32
	Payloads   [][]byte
}

func (m *GetBloodMessageListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.MessageIDs)
	w.uint32Slice(m.PlayerIDs)
	w.bytesSlice(m.Payloads)
	return w.buf, nil
}

func (m *GetBloodMessageListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.MessageIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.PlayerIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Payloads, err = r.bytesSlice(); err != nil {
		return err
	}
	return nil
}

// RequestReentryBloodMessage asks which of a previously-seen set of ids
// are still live, so the client can re-cache the rest
// (DS3_BloodMessageManager.cpp "Handle_RequestReentryBloodMessage").
type RequestReentryBloodMessage struct {
	MessageIDs []uint32
}

func (m *RequestReentryBloodMessage) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.MessageIDs)
	return w.buf, nil
}

func (m *RequestReentryBloodMessage) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32Slice()
	if err != nil {
		return err
	}
	m.MessageIDs = v
	return nil
}

// ReentryBloodMessageResponse lists the ids the caller must recreate.
type ReentryBloodMessageResponse struct {
	RecreateMessageIDs []uint32
}

func (m *ReentryBloodMessageResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.RecreateMessageIDs)
	return w.buf, nil
}

func (m *ReentryBloodMessageResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32Slice()
	if err != nil {
		return err
	}
	m.RecreateMessageIDs = v
	return nil
}

// RequestReCreateBloodMessageList re-submits a batch of messages the
// client lost cache for, one at a time re-persisted under new ids.
type RequestReCreateBloodMessageList struct {
	AreaIDs  []uint32
	CellIDs  []uint32
	Payloads [][]byte
}

func (m *RequestReCreateBloodMessageList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.AreaIDs)
	w.uint32Slice(m.CellIDs)
	w.bytesSlice(m.Payloads)
	return w.buf, nil
}

func (m *RequestReCreateBloodMessageList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.CellIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Payloads, err = r.bytesSlice(); err != nil {
		return err
	}
	return nil
}

// ReCreateBloodMessageListResponse returns the newly assigned ids, in the
// same order as the request's entries.
type ReCreateBloodMessageListResponse struct {
	MessageIDs []uint32
}

func (m *ReCreateBloodMessageListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.MessageIDs)
	return w.buf, nil
}

func (m *ReCreateBloodMessageListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32Slice()
	if err != nil {
		return err
	}
	m.MessageIDs = v
	return nil
}

// RequestGetBloodMessageEvaluation asks for the good/poor counters of a
// set of messages.
type RequestGetBloodMessageEvaluation struct {
	MessageIDs []uint32
}

func (m *RequestGetBloodMessageEvaluation) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.MessageIDs)
	return w.buf, nil
}

func (m *RequestGetBloodMessageEvaluation) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32Slice()
	if err != nil {
		return err
	}
	m.MessageIDs = v
	return nil
}

// GetBloodMessageEvaluationResponse carries, per requested id, the good
// and poor rating counts.
type GetBloodMessageEvaluationResponse struct {
	MessageIDs []uint32
	Good       []uint32
	Poor       []uint32
}

func (m *GetBloodMessageEvaluationResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.MessageIDs)
	w.uint32Slice(m.Good)
	w.uint32Slice(m.Poor)
	return w.buf, nil
}

func (m *GetBloodMessageEvaluationResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.MessageIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Good, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Poor, err = r.uint32Slice(); err != nil {
		return err
	}
	return nil
}

// RequestEvaluateBloodMessage rates a message good or poor.
type RequestEvaluateBloodMessage struct {
	MessageID uint32
	WasPoor   bool
}

func (m *RequestEvaluateBloodMessage) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.MessageID)
	w.bool(m.WasPoor)
	return w.buf, nil
}

func (m *RequestEvaluateBloodMessage) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.MessageID, err = r.uint32(); err != nil {
		return err
	}
	if m.WasPoor, err = r.boolean(); err != nil {
		return err
	}
	return nil
}

// RequestEvaluateBloodMessageResponse is an empty acknowledgement.
type RequestEvaluateBloodMessageResponse struct{}

func (m *RequestEvaluateBloodMessageResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestEvaluateBloodMessageResponse) Unmarshal([]byte) error   { return nil }

// PushRequestEvaluateBloodMessage notifies a message's author that it was
// rated, if they are still online (spec.md §4.5 blood-message handler).
type PushRequestEvaluateBloodMessage struct {
	MessageID uint32
	WasPoor   bool
}

func (m *PushRequestEvaluateBloodMessage) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.MessageID)
	w.bool(m.WasPoor)
	return w.buf, nil
}

func (m *PushRequestEvaluateBloodMessage) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.MessageID, err = r.uint32(); err != nil {
		return err
	}
	if m.WasPoor, err = r.boolean(); err != nil {
		return err
	}
	return nil
}

// RequestRemoveBloodMessage withdraws a message the caller authored.
type RequestRemoveBloodMessage struct {
	MessageID uint32
}

func (m *RequestRemoveBloodMessage) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.MessageID)
	return w.buf, nil
}

func (m *RequestRemoveBloodMessage) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.MessageID = v
	return nil
}

// RequestRemoveBloodMessageResponse is an empty acknowledgement.
type RequestRemoveBloodMessageResponse struct{}

func (m *RequestRemoveBloodMessageResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestRemoveBloodMessageResponse) Unmarshal([]byte) error   { return nil }

// RequestGetRightMatchingArea maps a client-reported area/cell into the
// matching-area id used for sign/bloodstain/ghost neighbourhood grouping
// (DS3_SignManager.cpp "Handle_RequestGetRightMatchingArea"; spec.md §4.5
// sign handler).
type RequestGetRightMatchingArea struct {
	AreaID uint32
	CellID uint32
}

func (m *RequestGetRightMatchingArea) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.CellID)
	return w.buf, nil
}

func (m *RequestGetRightMatchingArea) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.CellID, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// GetRightMatchingAreaResponse carries the resolved matching-area id.
type GetRightMatchingAreaResponse struct {
	MatchingAreaID uint32
}

func (m *GetRightMatchingAreaResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.MatchingAreaID)
	return w.buf, nil
}

func (m *GetRightMatchingAreaResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.MatchingAreaID = v
	return nil
}

// RequestCreateBloodstain caches a death-replay blob
// (DS3_BloodstainManager.cpp "Handle_RequestCreateBloodstain").
type RequestCreateBloodstain struct {
	AreaID  uint32
	CellID  uint32
	Payload []byte
}

func (m *RequestCreateBloodstain) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.CellID)
	w.bytes(m.Payload)
	return w.buf, nil
}

func (m *RequestCreateBloodstain) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.CellID, err = r.uint32(); err != nil {
		return err
	}
	if m.Payload, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// CreateBloodstainResponse returns the newly assigned bloodstain id.
type CreateBloodstainResponse struct {
	BloodstainID uint32
}

func (m *CreateBloodstainResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.BloodstainID)
	return w.buf, nil
}

func (m *CreateBloodstainResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.BloodstainID = v
	return nil
}

// RequestGetBloodstainList samples cached bloodstains in the requested
// areas (spec.md §4.5 bloodstain handler).
type RequestGetBloodstainList struct {
	AreaIDs    []uint32
	MaxPerArea uint32
}

func (m *RequestGetBloodstainList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.AreaIDs)
	w.uint32(m.MaxPerArea)
	return w.buf, nil
}

func (m *RequestGetBloodstainList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.MaxPerArea, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// GetBloodstainListResponse carries the sampled bloodstain entries.
type GetBloodstainListResponse struct {
	BloodstainIDs []uint32
	Payloads      [][]byte
}

func (m *GetBloodstainListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.BloodstainIDs)
	w.bytesSlice(m.Payloads)
	return w.buf, nil
}

func (m *GetBloodstainListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.BloodstainIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Payloads, err = r.bytesSlice(); err != nil {
		return err
	}
	return nil
}

// RequestGetDeadingGhost asks for the replay-in-progress ghost tied to a
// specific bloodstain (DS3_BloodstainManager.cpp
// "Handle_RequestGetDeadingGhost").
type RequestGetDeadingGhost struct {
	BloodstainID uint32
}

func (m *RequestGetDeadingGhost) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.BloodstainID)
	return w.buf, nil
}

func (m *RequestGetDeadingGhost) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.BloodstainID = v
	return nil
}

// GetDeadingGhostResponse carries the replay payload, empty if none exists.
type GetDeadingGhostResponse struct {
	Payload []byte
}

func (m *GetDeadingGhostResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.bytes(m.Payload)
	return w.buf, nil
}

func (m *GetDeadingGhostResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.bytes()
	if err != nil {
		return err
	}
	m.Payload = v
	return nil
}

// RequestCreateGhostData caches a ghost replay blob. Same cache/sample
// pattern as bloodstains; single opaque data blob (spec.md §4.5 ghost
// handler; DS3_GhostDataManager.cpp was not recovered from the original
// source pack, so this type's shape is grounded on its sibling
// DS3_BloodstainManager.cpp "Handle_RequestCreateBloodstain" instead).
type RequestCreateGhostData struct {
	AreaID  uint32
	CellID  uint32
	Payload []byte
}

func (m *RequestCreateGhostData) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.CellID)
	w.bytes(m.Payload)
	return w.buf, nil
}

func (m *RequestCreateGhostData) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.CellID, err = r.uint32(); err != nil {
		return err
	}
	if m.Payload, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// CreateGhostDataResponse returns the newly assigned ghost id.
type CreateGhostDataResponse struct {
	GhostID uint32
}

func (m *CreateGhostDataResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.GhostID)
	return w.buf, nil
}

func (m *CreateGhostDataResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.GhostID = v
	return nil
}

// RequestGetGhostDataList samples cached ghosts in the requested areas.
type RequestGetGhostDataList struct {
	AreaIDs    []uint32
	MaxPerArea uint32
}

func (m *RequestGetGhostDataList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.AreaIDs)
	w.uint32(m.MaxPerArea)
	return w.buf, nil
}

func (m *RequestGetGhostDataList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.MaxPerArea, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// GetGhostDataListResponse carries the sampled ghost entries.
type GetGhostDataListResponse struct {
	GhostIDs []uint32
	Payloads [][]byte
}

func (m *GetGhostDataListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.GhostIDs)
	w.bytesSlice(m.Payloads)
	return w.buf, nil
}

func (m *GetGhostDataListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.GhostIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Payloads, err = r.bytesSlice(); err != nil {
		return err
	}
	return nil
}

// RequestGetBreakInTargetList asks for invadable hosts in the caller's
// area matching the invasion matching rules (DS3_BreakInManager.cpp
// "Handle_RequestGetBreakInTargetList"; spec.md §4.5 break-in handler).
type RequestGetBreakInTargetList struct {
	AreaID      uint32
	SoulLevel   int32
	WeaponLevel int32
}

func (m *RequestGetBreakInTargetList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.int32(m.SoulLevel)
	w.int32(m.WeaponLevel)
	return w.buf, nil
}

func (m *RequestGetBreakInTargetList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if m.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	return nil
}

// GetBreakInTargetListResponse carries candidate host player ids.
type GetBreakInTargetListResponse struct {
	PlayerIDs []uint32
}

func (m *GetBreakInTargetListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.PlayerIDs)
	return w.buf, nil
}

func (m *GetBreakInTargetListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32Slice()
	if err != nil {
		return err
	}
	m.PlayerIDs = v
	return nil
}

// RequestBreakInTarget asks to invade a specific host (relayed to the
// target's session as PushRequestBreakInTarget).
type RequestBreakInTarget struct {
	TargetPlayerID uint32
}

func (m *RequestBreakInTarget) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.TargetPlayerID)
	return w.buf, nil
}

func (m *RequestBreakInTarget) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.TargetPlayerID = v
	return nil
}

// RequestRejectBreakInTarget declines an invasion in progress.
type RequestRejectBreakInTarget struct {
	InvaderPlayerID uint32
}

func (m *RequestRejectBreakInTarget) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.InvaderPlayerID)
	return w.buf, nil
}

func (m *RequestRejectBreakInTarget) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.InvaderPlayerID = v
	return nil
}

// PushRequestBreakInTarget notifies the target host that an invader is
// incoming.
type PushRequestBreakInTarget struct {
	InvaderPlayerID uint32
}

func (m *PushRequestBreakInTarget) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.InvaderPlayerID)
	return w.buf, nil
}

func (m *PushRequestBreakInTarget) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.InvaderPlayerID = v
	return nil
}

// PushRequestRejectBreakInTarget notifies the invader that the host
// declined or the invasion expired.
type PushRequestRejectBreakInTarget struct {
	TargetPlayerID uint32
}

func (m *PushRequestRejectBreakInTarget) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.TargetPlayerID)
	return w.buf, nil
}

func (m *PushRequestRejectBreakInTarget) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.TargetPlayerID = v
	return nil
}

// RequestGetVisitorList asks for players available for co-op visiting
// via the Coastal Blue/Way of White summon pools
// (DS3_VisitorManager.cpp "Handle_RequestGetVisitorList"; spec.md §4.5
// visitor handler).
type RequestGetVisitorList struct {
	AreaID      uint32
	VisitorPool uint32
	SoulLevel   int32
	WeaponLevel int32
}

func (m *RequestGetVisitorList) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.VisitorPool)
	w.int32(m.SoulLevel)
	w.int32(m.WeaponLevel)
	return w.buf, nil
}

func (m *RequestGetVisitorList) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.VisitorPool, err = r.uint32(); err != nil {
		return err
	}
	if m.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if m.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	return nil
}

// GetVisitorListResponse carries candidate visitor player ids.
type GetVisitorListResponse struct {
	PlayerIDs []uint32
}

func (m *GetVisitorListResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.PlayerIDs)
	return w.buf, nil
}

func (m *GetVisitorListResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32Slice()
	if err != nil {
		return err
	}
	m.PlayerIDs = v
	return nil
}

// RequestVisit asks to visit a specific target.
type RequestVisit struct {
	TargetPlayerID uint32
}

func (m *RequestVisit) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.TargetPlayerID)
	return w.buf, nil
}

func (m *RequestVisit) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.TargetPlayerID = v
	return nil
}

// RequestRejectVisit declines a pending visit.
type RequestRejectVisit struct {
	VisitorPlayerID uint32
}

func (m *RequestRejectVisit) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.VisitorPlayerID)
	return w.buf, nil
}

func (m *RequestRejectVisit) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.VisitorPlayerID = v
	return nil
}

// PushRequestVisit notifies the target that a visitor is incoming.
type PushRequestVisit struct {
	VisitorPlayerID uint32
}

func (m *PushRequestVisit) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.VisitorPlayerID)
	return w.buf, nil
}

func (m *PushRequestVisit) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.VisitorPlayerID = v
	return nil
}

// PushRequestRejectVisit notifies the visitor that they were declined.
type PushRequestRejectVisit struct {
	TargetPlayerID uint32
}

func (m *PushRequestRejectVisit) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.TargetPlayerID)
	return w.buf, nil
}

func (m *PushRequestRejectVisit) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.TargetPlayerID = v
	return nil
}

// PushRequestRemoveVisitor notifies a host that a visitor session ended.
type PushRequestRemoveVisitor struct {
	VisitorPlayerID uint32
}

func (m *PushRequestRemoveVisitor) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.VisitorPlayerID)
	return w.buf, nil
}

func (m *PushRequestRemoveVisitor) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.VisitorPlayerID = v
	return nil
}

// RequestRegisterQuickMatch enters a player into the quick-match queue
// (DS3_QuickMatchManager.cpp "Handle_RequestRegisterQuickMatch"; spec.md
// §4.5 quick-match handler).
type RequestRegisterQuickMatch struct {
	AreaID      uint32
	MatchingMode uint32
	SoulLevel   int32
	WeaponLevel int32
}

func (m *RequestRegisterQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.MatchingMode)
	w.int32(m.SoulLevel)
	w.int32(m.WeaponLevel)
	return w.buf, nil
}

func (m *RequestRegisterQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.MatchingMode, err = r.uint32(); err != nil {
		return err
	}
	if m.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if m.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	return nil
}

// RequestUpdateQuickMatch refreshes a player's queued entry.
type RequestUpdateQuickMatch struct {
	SoulLevel   int32
	WeaponLevel int32
}

func (m *RequestUpdateQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.int32(m.SoulLevel)
	w.int32(m.WeaponLevel)
	return w.buf, nil
}

func (m *RequestUpdateQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.SoulLevel, err = r.int32(); err != nil {
		return err
	}
	if m.WeaponLevel, err = r.int32(); err != nil {
		return err
	}
	return nil
}

// RequestUnregisterQuickMatch removes a player from the queue.
type RequestUnregisterQuickMatch struct{}

func (m *RequestUnregisterQuickMatch) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestUnregisterQuickMatch) Unmarshal([]byte) error   { return nil }

// RequestSearchQuickMatch asks for a candidate opponent/host from the
// queue.
type RequestSearchQuickMatch struct {
	AreaID       uint32
	MatchingMode uint32
}

func (m *RequestSearchQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.uint32(m.MatchingMode)
	return w.buf, nil
}

func (m *RequestSearchQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.MatchingMode, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// SearchQuickMatchResponse carries the matched candidate, if any.
type SearchQuickMatchResponse struct {
	Found          bool
	CandidatePlayerID uint32
}

func (m *SearchQuickMatchResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.bool(m.Found)
	w.uint32(m.CandidatePlayerID)
	return w.buf, nil
}

func (m *SearchQuickMatchResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.Found, err = r.boolean(); err != nil {
		return err
	}
	if m.CandidatePlayerID, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// RequestJoinQuickMatch asks to join a specific candidate's session.
// CharacterID identifies which of the guest's characters is joining
// (DS3_QuickMatchManager.cpp's Handle_RequestJoinQuickMatch reads
// Request->character_id() and carries it into set_join_character_id).
type RequestJoinQuickMatch struct {
	HostPlayerID uint32
	CharacterID  uint32
}

func (m *RequestJoinQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.HostPlayerID)
	w.uint32(m.CharacterID)
	return w.buf, nil
}

func (m *RequestJoinQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.HostPlayerID, err = r.uint32(); err != nil {
		return err
	}
	if m.CharacterID, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// PushRequestJoinQuickMatch notifies the host that a guest wants in,
// including which character is joining.
type PushRequestJoinQuickMatch struct {
	GuestPlayerID uint32
	CharacterID   uint32
}

func (m *PushRequestJoinQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.GuestPlayerID)
	w.uint32(m.CharacterID)
	return w.buf, nil
}

func (m *PushRequestJoinQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.GuestPlayerID, err = r.uint32(); err != nil {
		return err
	}
	if m.CharacterID, err = r.uint32(); err != nil {
		return err
	}
	return nil
}

// PushRequestRejectQuickMatch notifies the guest they were declined.
type PushRequestRejectQuickMatch struct {
	HostPlayerID uint32
}

func (m *PushRequestRejectQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.HostPlayerID)
	return w.buf, nil
}

func (m *PushRequestRejectQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.HostPlayerID = v
	return nil
}

// RequestAcceptQuickMatch accepts a pending join request.
type RequestAcceptQuickMatch struct {
	GuestPlayerID uint32
}

func (m *RequestAcceptQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.GuestPlayerID)
	return w.buf, nil
}

func (m *RequestAcceptQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.GuestPlayerID = v
	return nil
}

// RequestRejectQuickMatch declines a pending join request.
type RequestRejectQuickMatch struct {
	GuestPlayerID uint32
}

func (m *RequestRejectQuickMatch) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.GuestPlayerID)
	return w.buf, nil
}

func (m *RequestRejectQuickMatch) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.GuestPlayerID = v
	return nil
}

// RequestSendQuickMatchStart tells the other party the match has begun.
type RequestSendQuickMatchStart struct {
	OpponentPlayerID uint32
}

func (m *RequestSendQuickMatchStart) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.OpponentPlayerID)
	return w.buf, nil
}

func (m *RequestSendQuickMatchStart) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.OpponentPlayerID = v
	return nil
}

// QuickMatchResult mirrors DS3_QuickMatchManager.cpp's 4-value
// QuickMatchResult enum (Win/Draw/Lose/Disconnect), each driving a
// different XP table entry (Config.QuickMatchWinXp/DrawXp/LoseXp; a
// disconnect earns nothing).
type QuickMatchResult uint32

const (
	QuickMatchResultWin QuickMatchResult = iota
	QuickMatchResultDraw
	QuickMatchResultLose
	QuickMatchResultDisconnect
)

// RequestSendQuickMatchResult reports the match outcome, which feeds the
// quickmatch XP table (spec.md §4.5 quick-match handler:
// SendQuickMatchResult(mode, result)). Mode is the raw MatchingMode the
// match was played under (DS3_QuickMatchManager.cpp:520's Request->mode());
// Result is the QuickMatchResult outcome (:527).
type RequestSendQuickMatchResult struct {
	OpponentPlayerID uint32
	Mode             uint32
	Result           QuickMatchResult
}

func (m *RequestSendQuickMatchResult) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.OpponentPlayerID)
	w.uint32(m.Mode)
	w.uint32(uint32(m.Result))
	return w.buf, nil
}

func (m *RequestSendQuickMatchResult) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.OpponentPlayerID, err = r.uint32(); err != nil {
		return err
	}
	if m.Mode, err = r.uint32(); err != nil {
		return err
	}
	result, err := r.uint32()
	if err != nil {
		return err
	}
	m.Result = QuickMatchResult(result)
	return nil
}

// SendQuickMatchResultResponse carries the caller's updated quickmatch
// rank after XP is applied.
type SendQuickMatchResultResponse struct {
	NewRank uint32
}

func (m *SendQuickMatchResultResponse) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.NewRank)
	return w.buf, nil
}

func (m *SendQuickMatchResultResponse) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	v, err := r.uint32()
	if err != nil {
		return err
	}
	m.NewRank = v
	return nil
}

// RequestNotifyRingBell reports a covenant bell ring for the caller's
// area (DS3_MiscManager.cpp "Handle_RequestNotifyRingBell"; spec.md §4.5
// misc handler). Data is the opaque bell-type payload the client
// expects echoed back out in the push to listeners.
type RequestNotifyRingBell struct {
	AreaID uint32
	Data   []byte
}

func (m *RequestNotifyRingBell) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.AreaID)
	w.bytes(m.Data)
	return w.buf, nil
}

func (m *RequestNotifyRingBell) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.Data, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// RequestNotifyRingBellResponse is an empty ack; DS3_MiscManager.cpp
// disconnects the client if it isn't sent.
type RequestNotifyRingBellResponse struct{}

func (m *RequestNotifyRingBellResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestNotifyRingBellResponse) Unmarshal([]byte) error   { return nil }

// PushRequestNotifyRingBell is fanned out to every session in the bell's
// listening zones (DS3_MiscManager.cpp Handle_RequestNotifyRingBell).
type PushRequestNotifyRingBell struct {
	RingerPlayerID uint32
	AreaID         uint32
	Data           []byte
}

func (m *PushRequestNotifyRingBell) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.RingerPlayerID)
	w.uint32(m.AreaID)
	w.bytes(m.Data)
	return w.buf, nil
}

func (m *PushRequestNotifyRingBell) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.RingerPlayerID, err = r.uint32(); err != nil {
		return err
	}
	if m.AreaID, err = r.uint32(); err != nil {
		return err
	}
	if m.Data, err = r.bytes(); err != nil {
		return err
	}
	return nil
}

// RequestSendMessageToPlayers relays a short text message to up to
// constants.MaxSendMessageToPlayersRecipients other players.
type RequestSendMessageToPlayers struct {
	RecipientPlayerIDs []uint32
	Text               string
}

func (m *RequestSendMessageToPlayers) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32Slice(m.RecipientPlayerIDs)
	w.string(m.Text)
	return w.buf, nil
}

func (m *RequestSendMessageToPlayers) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.RecipientPlayerIDs, err = r.uint32Slice(); err != nil {
		return err
	}
	if m.Text, err = r.string(); err != nil {
		return err
	}
	return nil
}

// RequestSendMessageToPlayersResponse is an empty ack; DS3_MiscManager.cpp
// notes the client doesn't function correctly without it.
type RequestSendMessageToPlayersResponse struct{}

func (m *RequestSendMessageToPlayersResponse) Marshal() ([]byte, error) { return nil, nil }
func (m *RequestSendMessageToPlayersResponse) Unmarshal([]byte) error   { return nil }

// PushRequestSendMessageToPlayers is relayed to each online recipient.
type PushRequestSendMessageToPlayers struct {
	SenderPlayerID uint32
	Text           string
}

func (m *PushRequestSendMessageToPlayers) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.uint32(m.SenderPlayerID)
	w.string(m.Text)
	return w.buf, nil
}

func (m *PushRequestSendMessageToPlayers) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.SenderPlayerID, err = r.uint32(); err != nil {
		return err
	}
	if m.Text, err = r.string(); err != nil {
		return err
	}
	return nil
}

// RequestLogMessage carries a client telemetry event; the logging
// handler folds Delta into the durable statistic keyed by
// Category/Subkey (spec.md §4.5 logging handler).
type RequestLogMessage struct {
	Category string
	Subkey   string
	Delta    int64
}

func (m *RequestLogMessage) Marshal() ([]byte, error) {
	w := &wireWriter{}
	w.string(m.Category)
	w.string(m.Subkey)
	w.int64(m.Delta)
	return w.buf, nil
}

func (m *RequestLogMessage) Unmarshal(b []byte) error {
	r := &wireReader{buf: b}
	var err error
	if m.Category, err = r.string(); err != nil {
		return err
	}
	if m.Subkey, err = r.string(); err != nil {
		return err
	}
	if m.Delta, err = r.int64(); err != nil {
		return err
	}
	return nil
}
