package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/zeusync/colony/internal/core/observability/log"
	"github.com/zeusync/colony/internal/core/rooms"
)

// Message is the envelope of everything written to a websocket client.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	TypeStatus = "status"
	TypeEvent  = "event"
	TypeAck    = "ack"
	TypeError  = "error"
)

func (f *Feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt32(&f.closed) == 1 {
		http.Error(w, ErrFeedClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	if err := f.auth.Authenticate(r); err != nil {
		f.logger.Warn("feed client rejected", log.String("remote", r.RemoteAddr), log.Error(err))
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	conn.SetReadLimit(f.config.MaxMessageSize)

	c := &client{conn: conn}
	f.mu.Lock()
	f.clients[conn] = c
	f.mu.Unlock()
	f.logger.Debug("feed client connected", log.String("remote", conn.RemoteAddr().String()))

	if f.status != nil {
		if err := f.write(c, Message{Type: TypeStatus, Data: f.status()}); err != nil {
			f.drop(conn)
			return
		}
	}
	f.readCommands(c)
}

func (f *Feed) readCommands(c *client) {
	defer f.drop(c.conn)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				f.logger.Debug("feed client read failed", log.Error(err))
			}
			return
		}

		var cmd rooms.Command
		if err := json.Unmarshal(raw, &cmd); err != nil || cmd.Name == "" {
			_ = f.write(c, Message{Type: TypeError, Data: fmt.Sprintf("%v: expected a command object", ErrInvalidMessage)})
			continue
		}

		select {
		case f.commands <- cmd:
			_ = f.write(c, Message{Type: TypeAck, Data: cmd})
		default:
			_ = f.write(c, Message{Type: TypeError, Data: ErrQueueFull.Error()})
		}
	}
}
