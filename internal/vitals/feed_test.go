package vitals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = ws.Upgrader{}

func telemetryServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(ws.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSnapshotDecodesStringTemperature(t *testing.T) {
	var snap Snapshot
	err := json.Unmarshal([]byte(`{"ts":1700000000,"hr":72,"spo2":98,"temp_c":"36.6","status":"Healthy"}`), &snap)
	require.NoError(t, err)
	assert.Equal(t, 72, snap.HR)
	assert.Equal(t, 98, snap.SpO2)
	assert.InDelta(t, 36.6, snap.TempC, 0.001)
	assert.Equal(t, "Healthy", snap.Status)
}

func TestSnapshotString(t *testing.T) {
	snap := Snapshot{HR: 72, SpO2: 98, TempC: 36.6, Status: "Healthy"}
	assert.Equal(t, "heart rate 72 bpm, SpO2 98%, temperature 36.6°C (Healthy)", snap.String())
}

func TestFeedKeepsLatestFrame(t *testing.T) {
	srv := telemetryServer(t, []string{
		`{"ts":1,"hr":70,"spo2":97,"temp_c":"36.5","status":"Healthy"}`,
		`{"ts":2,"hr":110,"spo2":93,"temp_c":"38.2","status":"Elevated"}`,
	})
	defer srv.Close()

	feed := NewFeed(wsURL(srv))
	go feed.Run()
	defer feed.Close()

	require.Eventually(t, func() bool {
		snap, ok := feed.Latest()
		return ok && snap.TS == 2
	}, 2*time.Second, 5*time.Millisecond, "latest frame never arrived")

	snap, ok := feed.Latest()
	require.True(t, ok)
	assert.Equal(t, 110, snap.HR)
	assert.Equal(t, "Elevated", snap.Status)
}

func TestFeedSkipsBadFrames(t *testing.T) {
	srv := telemetryServer(t, []string{
		`not json at all`,
		`{"ts":5,"hr":64,"spo2":99,"temp_c":"36.4","status":"Healthy"}`,
	})
	defer srv.Close()

	feed := NewFeed(wsURL(srv))
	go feed.Run()
	defer feed.Close()

	require.Eventually(t, func() bool {
		snap, ok := feed.Latest()
		return ok && snap.TS == 5
	}, 2*time.Second, 5*time.Millisecond)
}

func TestFeedEmptyUntilFirstFrame(t *testing.T) {
	feed := NewFeed("ws://127.0.0.1:1/nope")
	_, ok := feed.Latest()
	assert.False(t, ok)
	feed.Close()
}
