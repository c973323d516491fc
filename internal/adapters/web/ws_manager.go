package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lcalzada-xor/airsentry/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     allowOrigin,
}

// allowOrigin accepts same-origin handshakes and local dashboards. Browsers
// send Origin on every websocket handshake, so same-origin is matched against
// the request Host rather than requiring the header to be absent.
func allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host == r.Host {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}

	slog.Warn("websocket origin rejected", "origin", origin)
	return false
}

// WSMessage is the envelope for every frame pushed to clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager pushes each published cycle result to all connected websocket
// clients. It subscribes to the monitor via BroadcastFindings.
type WSManager struct {
	clients map[*websocket.Conn]struct{}
	mu      sync.Mutex
}

// NewWSManager creates an empty websocket hub.
func NewWSManager() *WSManager {
	return &WSManager{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// HandleWebSocket upgrades the connection and tracks it until it closes.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = struct{}{}
	m.mu.Unlock()

	slog.Info("websocket connected", "remote", conn.RemoteAddr())

	// Drain reads; unregister on disconnect.
	go func() {
		defer func() {
			conn.Close()
			m.mu.Lock()
			delete(m.clients, conn)
			m.mu.Unlock()
			slog.Info("websocket disconnected", "remote", conn.RemoteAddr())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// BroadcastFindings implements ports.FindingSubscriber. A dead client is
// dropped; it never blocks delivery to the others.
func (m *WSManager) BroadcastFindings(result ports.CycleResult) {
	msg := WSMessage{Type: "findings", Payload: result}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		if err := conn.WriteJSON(msg); err != nil {
			slog.Warn("websocket write failed, dropping client", "remote", conn.RemoteAddr(), "error", err)
			conn.Close()
			delete(m.clients, conn)
		}
	}
}
