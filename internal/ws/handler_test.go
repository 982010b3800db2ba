package ws

import (
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBattleServer(t *testing.T) (*httptest.Server, *Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	reg := NewRegistry(logger)
	h := NewHandler(reg, logger)

	r := chi.NewRouter()
	r.Get("/ws/battle/{battleId}", h.ServeBattle)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, reg
}

func dial(t *testing.T, srv *httptest.Server, battleID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/battle/" + battleID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForCount polls until the registry sees n connections; registration
// happens on the server goroutine after the handshake response is sent.
func waitForCount(t *testing.T, reg *Registry, battleID string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for reg.Count(battleID) != n {
		if time.Now().After(deadline) {
			t.Fatalf("battle %s has %d connections, want %d", battleID, reg.Count(battleID), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readOne(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return data
}

func TestServeBattle_RelaysBetweenClients(t *testing.T) {
	srv, reg := newBattleServer(t)

	alice := dial(t, srv, "battle-1")
	bob := dial(t, srv, "battle-1")
	waitForCount(t, reg, "battle-1", 2)

	msg := []byte(`{"type":"code_update","content":"print(42)"}`)
	require.NoError(t, alice.WriteMessage(websocket.TextMessage, msg))

	// Both clients receive the frame, sender included.
	assert.Equal(t, msg, readOne(t, bob))
	assert.Equal(t, msg, readOne(t, alice))
}

func TestServeBattle_InvalidJSONDropped(t *testing.T) {
	srv, reg := newBattleServer(t)

	alice := dial(t, srv, "battle-1")
	bob := dial(t, srv, "battle-1")
	waitForCount(t, reg, "battle-1", 2)

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("not json")))
	valid := []byte(`{"ok":true}`)
	require.NoError(t, alice.WriteMessage(websocket.TextMessage, valid))

	// The invalid frame never arrives; the next valid one does.
	assert.Equal(t, valid, readOne(t, bob))
}

func TestServeBattle_IsolatedPerBattle(t *testing.T) {
	srv, reg := newBattleServer(t)

	alice := dial(t, srv, "battle-1")
	outsider := dial(t, srv, "battle-2")
	waitForCount(t, reg, "battle-1", 1)
	waitForCount(t, reg, "battle-2", 1)

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(`{"x":1}`)))

	outsider.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := outsider.ReadMessage()
	assert.Error(t, err, "outsider should not receive frames from another battle")
}

func TestServeBattle_DisconnectDeregisters(t *testing.T) {
	srv, reg := newBattleServer(t)

	alice := dial(t, srv, "battle-1")
	waitForCount(t, reg, "battle-1", 1)

	alice.Close()
	waitForCount(t, reg, "battle-1", 0)
}
