package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type matchHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newMatchHub() *matchHub {
	return &matchHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *matchHub) Add(matchID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[matchID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[matchID] = group
	}
	group[conn] = struct{}{}
}

func (h *matchHub) Remove(matchID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[matchID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, matchID)
	}
}

func (h *matchHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *matchHub) Broadcast(matchID string, payload any) {
	h.mu.Lock()
	group := h.groups[matchID]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(matchID, conn)
		}
	}
}

// handleMatchWebsocket streams match snapshots: one on connect, then one
// after every mutation.
func (s *Server) handleMatchWebsocket(c *gin.Context) {
	matchID := c.Param("id")
	match, ok := s.store.GetMatch(matchID)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.log.Debug().Str("match_id", matchID).Str("remote", c.Request.RemoteAddr).Msg("ws connected")
	s.ws.Add(matchID, conn)
	s.ws.Send(conn, s.snapshot(match))
	go s.readWS(matchID, conn)
}

func (s *Server) readWS(matchID string, conn *websocket.Conn) {
	defer s.ws.Remove(matchID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.log.Debug().Str("match_id", matchID).Err(err).Msg("ws disconnected")
			return
		}
	}
}

func (s *Server) broadcastMatchUpdate(match *Match) {
	if s.ws == nil {
		return
	}
	s.ws.Broadcast(match.ID, s.snapshot(match))
}
