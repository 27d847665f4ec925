package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// upgrader builds a websocket.Upgrader from the configuration
func (s *Server) upgrader() *websocket.Upgrader {
	allowed := s.config.WebSocket.AllowedOrigins
	return &websocket.Upgrader{
		ReadBufferSize:  s.config.WebSocket.ReadBufferSize,
		WriteBufferSize: s.config.WebSocket.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, o := range allowed {
				if o == "*" || o == origin {
					return true
				}
			}
			return false
		},
	}
}

// handleWebSocket transforms every inbound JSON message and replies with the
// result on the same connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithRequestID(getRequestID(r.Context()))

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(s.config.WebSocket.MaxMessageSize)
	log.Info("WebSocket client connected", zap.String("client_ip", getClientIP(r)))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}

		var reply any
		var req TransformRequest
		if err := json.Unmarshal(data, &req); err != nil {
			reply = ErrorResponse{Error: fmt.Sprintf("invalid JSON message: %v", err)}
		} else if resp, _, err := s.transform(req); err != nil {
			reply = ErrorResponse{Error: err.Error()}
		} else {
			reply = resp
		}

		conn.SetWriteDeadline(time.Now().Add(s.config.WebSocket.WriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn("WebSocket write failed", zap.Error(err))
			return
		}
	}
}
