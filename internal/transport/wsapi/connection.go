package wsapi

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mnemo-systems/mnemo/internal/tools"
)

// connection is one upgraded WebSocket client. Each runs its own readPump
// and writePump goroutine, matching the teacher's per-client pump pair.
type connection struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	surface *tools.Surface
	logger  *slog.Logger
}

func (c *connection) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", slog.Any("error", err))
			}
			return
		}

		go c.handle(raw)
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle decodes one framed request, dispatches it against the surface,
// and writes back the framed response. Each request runs on its own
// goroutine so a slow recall never blocks a concurrent remember on the
// same connection.
func (c *connection) handle(raw []byte) {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		c.reply(response{Error: &rpcFault{Code: codeParseError, Message: "malformed request frame"}})
		return
	}

	resp := dispatch(c.surface, req)
	c.reply(resp)
}

func (c *connection) reply(resp response) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("failed to marshal response frame", slog.Any("error", err))
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping response", slog.String("id", resp.ID))
	}
}
