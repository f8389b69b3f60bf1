package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"echolens/internal/hunt"
	"echolens/internal/narrative"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// envelope is one websocket message to the page
type envelope struct {
	Type  string        `json:"type"`
	State *hunt.UIState `json:"state,omitempty"`
	Fact  string        `json:"fact,omitempty"`
}

// HandleWebSocket streams console state and rotating fun facts to the page
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, console := s.console(w, r)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	s.sessions.attach(id, 1)
	defer s.sessions.attach(id, -1)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// the reader only notices the client going away
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
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

	facts := make(chan string, 1)
	rotator := narrative.NewRotator(s.Facts, s.Config.FactInterval)
	go rotator.Run(ctx, func(fact string) {
		select {
		case facts <- fact:
		case <-ctx.Done():
		}
	})

	updates, unsubscribe := console.Subscribe()
	defer unsubscribe()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		var msg *envelope
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			msg = &envelope{Type: "state", State: &state}
		case fact := <-facts:
			msg = &envelope{Type: "fact", Fact: fact}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			s.log.Debug("WebSocket write failed", map[string]interface{}{"error": err.Error()})
			return
		}
	}
}
