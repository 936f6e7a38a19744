package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/michaelbrown/codeproxy/internal/compile"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // no cookies or credentials ride on this socket
	},
}

// wsOutgoing is a message to the client.
type wsOutgoing struct {
	Type   string `json:"type"` // running, done, error
	ID     string `json:"id,omitempty"`
	Output string `json:"output"`
}

// handleCompileWS accepts compile requests over a WebSocket, one at a time.
// Each request gets a "running" frame followed by "done" or "error".
func (s *Server) handleCompileWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.maxBody)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read", zap.Error(err))
			}
			return
		}

		var req compile.Request
		if err := json.Unmarshal(data, &req); err != nil {
			if !s.wsWrite(conn, wsOutgoing{Type: "error", Output: "invalid request: " + err.Error()}) {
				return
			}
			continue
		}

		id := uuid.New().String()
		if !s.wsWrite(conn, wsOutgoing{Type: "running", ID: id}) {
			return
		}

		output, _, err := s.runCompile(r.Context(), id, req)
		msg := wsOutgoing{Type: "done", ID: id, Output: output}
		if err != nil {
			msg.Type = "error"
		}
		if !s.wsWrite(conn, msg) {
			return
		}
	}
}

func (s *Server) wsWrite(conn *websocket.Conn, v wsOutgoing) bool {
	if err := conn.WriteJSON(v); err != nil {
		s.logger.Debug("websocket write", zap.Error(err))
		return false
	}
	return true
}
