package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ws upgrades to a WebSocket session. Each text message is a Request, and
// each gets one Response in order.
func (s *Server) ws(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.cfg.Log.Printf("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	session := uuid.New().String()
	s.cfg.Log.Printf("%s: connected from %s", session, r.RemoteAddr)
	defer func() {
		conn.Close()
		s.cfg.Log.Printf("%s: disconnected", session)
	}()

	conn.SetReadLimit(s.cfg.MaxMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.ping(conn, done)

	ctx := r.Context()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.cfg.Log.Printf("%s: read: %v", session, err)
			}
			return
		}
		var req Request
		var resp Response
		if err := json.Unmarshal(msg, &req); err != nil {
			resp = Response{Error: err.Error(), Kind: "request"}
		} else {
			resp = s.Evaluate(ctx, session, req.Expr)
		}
		if err := s.write(conn, resp); err != nil {
			s.cfg.Log.Printf("%s: write: %v", session, err)
			return
		}
	}
}

// ping keeps the connection alive until done is closed. Control frames may
// be written concurrently with data frames.
func (s *Server) ping(conn *websocket.Conn, done <-chan struct{}) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, resp Response) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(resp)
}
