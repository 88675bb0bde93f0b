package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(0).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestWorldsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/worlds")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Worlds []string `json:"worlds"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Worlds, "cornell")
	assert.Contains(t, body.Worlds, "simple")
}

func dialRender(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/render?" + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads socket messages until one of the wanted type arrives
func readUntil(t *testing.T, conn *websocket.Conn, wantType string) Message {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == wantType {
			return msg
		}
		require.NotEqual(t, "error", msg.Type, "unexpected error message: %s", msg.Message)
	}
}

func TestRenderSocketStreamsCompleteImage(t *testing.T) {
	ts := newTestServer(t)
	conn := dialRender(t, ts,
		"world=simple&width=32&height=18&samplesPerPixel=2&maxDepth=5&seed=42")

	msg := readUntil(t, conn, "complete")
	assert.Equal(t, 18, msg.TotalLines)
	assert.Equal(t, 18, msg.CompletedLines)

	// The payload is a decodable PNG.
	data, err := base64.StdEncoding.DecodeString(msg.ImageData)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestRenderSocketStreamsLogs(t *testing.T) {
	ts := newTestServer(t)
	conn := dialRender(t, ts,
		"world=simple&width=32&height=18&samplesPerPixel=2&maxDepth=5&seed=42")

	msg := readUntil(t, conn, "log")
	var consoleMsg ConsoleMessage
	require.NoError(t, json.Unmarshal([]byte(msg.Message), &consoleMsg))
	assert.Contains(t, consoleMsg.Message, "simple")
}

func TestRenderSocketRejectsBadParams(t *testing.T) {
	ts := newTestServer(t)

	tests := []string{
		"width=abc",
		"width=1",     // below minimum
		"width=99999", // above maximum
		"samplesPerPixel=0",
	}
	for _, query := range tests {
		conn := dialRender(t, ts, query)
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg), query)
		assert.Equal(t, "error", msg.Type, query)
		conn.Close()
	}
}

func TestRenderSocketUnknownWorld(t *testing.T) {
	ts := newTestServer(t)
	conn := dialRender(t, ts, "world=nonexistent&width=32&height=18&samplesPerPixel=1")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == "error" {
			assert.Contains(t, msg.Message, "nonexistent")
			return
		}
	}
}

func TestParseRenderRequestDefaults(t *testing.T) {
	r := &http.Request{URL: &url.URL{}}
	req, err := parseRenderRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "cornell", req.World)
	assert.Equal(t, 400, req.Width)
	assert.Equal(t, 400, req.Height)
	assert.Equal(t, 50, req.SamplesPerPixel)
	assert.Equal(t, 50, req.MaxDepth)
	assert.Equal(t, 0, req.Workers)
}
