package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotifyDisabledWithoutURL(t *testing.T) {
	n := New("", time.Second)
	// Must not panic or attempt any delivery; there is nothing to assert
	// against but the absence of a server makes any attempted POST fail
	// loudly in -race/log output, so a clean run is the assertion.
	n.Notify(time.Now(), Origin{PlayerID: 1}, NoticeBell, "rang", nil, "")
}

func TestNotifyPostsPayload(t *testing.T) {
	var received atomic.Int32
	var body payload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := New(server.URL, 10*time.Second)
	origin := Origin{PlayerID: 7, SteamID: "steam:7", CharacterName: "Ashen One"}
	n.Notify(time.Now(), origin, NoticeAntiCheat, "flagged", []Field{{Name: "score", Value: "5.0"}}, "http://example.com/thumb.png")

	require.Eventually(t, func() bool { return received.Load() == 1 }, time.Second, 10*time.Millisecond)
	require.Equal(t, origin, body.Origin)
	require.Equal(t, NoticeAntiCheat, body.Type)
	require.Equal(t, "flagged", body.Text)
	require.Len(t, body.Fields, 1)
}

func TestNotifyCoalescesWithinCooldown(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := New(server.URL, time.Minute)
	origin := Origin{PlayerID: 3}
	now := time.Now()

	n.Notify(now, origin, NoticeBell, "first", nil, "")
	require.Eventually(t, func() bool { return received.Load() == 1 }, time.Second, 10*time.Millisecond)

	n.Notify(now.Add(time.Second), origin, NoticeBell, "second", nil, "")
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 1, received.Load(), "second notice within cooldown must be suppressed")

	n.Notify(now.Add(time.Minute+time.Second), origin, NoticeBell, "third", nil, "")
	require.Eventually(t, func() bool { return received.Load() == 2 }, time.Second, 10*time.Millisecond)
}

func TestNotifyDoesNotCoalesceAcrossOrigins(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := New(server.URL, time.Minute)
	now := time.Now()
	n.Notify(now, Origin{PlayerID: 1}, NoticeBell, "a", nil, "")
	n.Notify(now, Origin{PlayerID: 2}, NoticeBell, "b", nil, "")

	require.Eventually(t, func() bool { return received.Load() == 2 }, time.Second, 10*time.Millisecond)
}
