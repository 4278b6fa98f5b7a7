package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/auctionhouse/internal/model"
	"github.com/rickgao/auctionhouse/internal/wire"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// handleFeed streams every notification to a WebSocket client. Messages
// from the client are read only to detect disconnects.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := s.reg.Subscribe()
	defer sub.Close()

	s.logger.Debug("feed client connected", "remote_addr", r.RemoteAddr, "subscriber_id", sub.ID())

	done := make(chan struct{})
	defer close(done)

	// Pump the blocking subscription into a channel the writer can select on.
	events := make(chan model.Event)
	go func() {
		defer close(events)
		for {
			ev, ok := sub.Receive()
			if !ok {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	// Read loop: handles pongs and notices the client going away.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return
			}
			data, err := json.Marshal(wire.FromEvent(ev))
			if err != nil {
				s.logger.Error("encode feed event", "error", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-readDone:
			s.logger.Debug("feed client disconnected", "subscriber_id", sub.ID())
			return
		case <-s.feedCtx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}
