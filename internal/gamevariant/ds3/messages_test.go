package ds3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestCreateSignRoundTrip(t *testing.T) {
	want := &RequestCreateSign{
		AreaID:      1010,
		CellID:      3,
		SoulLevel:   50,
		WeaponLevel: 5,
		Password:    "hunt",
		Payload:     []byte{1, 2, 3, 4},
	}
	body, err := want.Marshal()
	require.NoError(t, err)

	got := &RequestCreateSign{}
	require.NoError(t, got.Unmarshal(body))
	require.Equal(t, want, got)
}

func TestSignListResponseRoundTripEmpty(t *testing.T) {
	want := &SignListResponse{}
	body, err := want.Marshal()
	require.NoError(t, err)

	got := &SignListResponse{}
	require.NoError(t, got.Unmarshal(body))
	require.Empty(t, got.SignIDs)
	require.Empty(t, got.Payloads)
}

func TestGetRankingDataResponseRoundTrip(t *testing.T) {
	want := &GetRankingDataResponse{
		PlayerIDs: []uint32{1, 2, 3},
		Scores:    []int64{100, 200, 300},
		Ranks:     []uint32{1, 2, 3},
	}
	body, err := want.Marshal()
	require.NoError(t, err)

	got := &GetRankingDataResponse{}
	require.NoError(t, got.Unmarshal(body))
	require.Equal(t, want, got)
}

func TestUnmarshalRejectsTruncatedBody(t *testing.T) {
	got := &RequestCreateSign{}
	err := got.Unmarshal([]byte{0, 0})
	require.ErrorIs(t, err, errWireTruncated)
}
