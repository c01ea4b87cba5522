package mux

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/room"
)

func dial(t *testing.T, ts *httptest.Server, path string, header http.Header) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	return conn
}

// readUntil reads messages until one with the key arrives
func readUntil(t *testing.T, conn *websocket.Conn, key string) map[string]interface{} {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg map[string]interface{}
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["key"] == key {
			return msg
		}
	}
}

func TestMux_notFound(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t))
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/nope", &errObj, 404)
	assert.Equal(t, "Not Found", errObj.Message)

	assertGet(t, ts, "/table/missing", &errObj, 404)
	assert.Equal(t, "table not found", errObj.Message)

	assertGet(t, ts, "/table/bad%20name", &errObj, 404)
}

func TestMux_tableLifecycle(t *testing.T) {
	a := assert.New(t)
	m := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var tables []*room.TableSummary
	assertGet(t, ts, "/table", &tables, 200)
	a.Empty(tables)

	conn := dial(t, ts, "/table/main/ws", nil)
	state := readUntil(t, conn, "state")
	a.NotNil(state["data"])

	require.NoError(t, conn.WriteJSON(&playable.PayloadIn{
		Action:         "join",
		AdditionalData: playable.AdditionalData{"name": "Alice"},
		Context:        "join-1",
	}))

	status := readUntil(t, conn, "status")
	a.Equal("seated", status["value"])
	a.Equal("join-1", status["context"])

	assertGet(t, ts, "/table", &tables, 200)
	if a.Len(tables, 1) {
		a.Equal(&room.TableSummary{Name: "main", Phase: "waiting", Seats: 1, Clients: 1}, tables[0])
	}

	var public map[string]interface{}
	assertGet(t, ts, "/table/main", &public, 200)
	seats, _ := public["seats"].([]interface{})
	if a.Len(seats, 1) {
		seat := seats[0].(map[string]interface{})
		a.Equal("Alice", seat["name"])
		a.Equal(float64(200), seat["stack"])
	}

	require.NoError(t, conn.Close())

	// the table closes with its last client
	a.Eventually(func() bool {
		_, ok := m.pitBoss.Dealer("main")
		return !ok
	}, 5*time.Second, 10*time.Millisecond)
}

func TestMux_allowedOrigins(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t, "https://holdem.example"))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/main/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	conn := dial(t, ts, "/table/main/ws", http.Header{"Origin": []string{"https://holdem.example"}})
	_ = conn.Close()
}
