package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the frontend origin; CORS does not apply to
	// WebSocket so the check is open here and locked down at the proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// socket wraps a gorilla connection with a write mutex. Gorilla permits
// only one concurrent writer; broadcasts from other clients' read loops
// would otherwise race.
type socket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socket) WriteMessage(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *socket) Close() error {
	return s.conn.Close()
}

// Handler upgrades battle connections and pumps messages through the
// registry.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// ServeBattle handles GET /ws/battle/{battleId}. Each received text frame
// that holds valid JSON is relayed verbatim to everyone in the battle,
// sender included. Frames that are not JSON are dropped. The connection is
// always deregistered on exit.
func (h *Handler) ServeBattle(w http.ResponseWriter, r *http.Request) {
	battleID := chi.URLParam(r, "battleId")
	if battleID == "" {
		http.Error(w, "missing battle id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	sock := &socket{conn: conn}
	h.registry.Connect(battleID, sock)
	h.logger.Info("battle client connected", slog.String("battleID", battleID))

	defer func() {
		h.registry.Disconnect(battleID, sock)
		sock.Close()
		h.logger.Info("battle client disconnected", slog.String("battleID", battleID))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if !json.Valid(data) {
			continue
		}
		h.registry.Broadcast(battleID, data)
	}
}
