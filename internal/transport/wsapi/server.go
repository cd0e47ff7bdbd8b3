// Package wsapi exposes tools.Surface over a single persistent WebSocket
// connection per client, framing JSON-RPC-shaped request/response pairs
// (spec section 6). Connection lifecycle (read/write pumps, ping/pong
// deadlines) is grounded on the teacher's internal/realtime.Client;
// the upgrader and handshake is grounded on its internal/websocket.Handler.
package wsapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mnemo-systems/mnemo/internal/tools"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1MB, memories can carry up to 1000 chars of content plus metadata
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server upgrades HTTP connections to WebSocket and dispatches framed
// requests against a tools.Surface.
type Server struct {
	surface *tools.Surface
	logger  *slog.Logger
}

// New builds a WebSocket handler bound to surface.
func New(surface *tools.Surface, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{surface: surface, logger: logger}
}

// ServeHTTP upgrades the connection and serves it until the client
// disconnects or the write/read pumps fail.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	id := "conn-" + uuid.NewString()[:8]
	c := &connection{
		id:      id,
		conn:    conn,
		send:    make(chan []byte, 64),
		surface: s.surface,
		logger:  s.logger.With(slog.String("conn", id)),
	}

	go c.writePump()
	go c.readPump()
}
