// Package events pushes mutation events to a user's connected sessions so a
// second device can reconcile its local state without polling.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aljaz-ferenc/budget-app/logger"
)

// Event mirrors the client reducer's action names, so a receiving session can
// apply the payload directly.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventAddBudget         = "ADD_BUDGET"
	EventAddSaving         = "ADD_SAVING"
	EventAddTransaction    = "ADD_TRANSACTION"
	EventUpdateSaving      = "UPDATE_SAVING"
	EventDeleteSaving      = "DELETE_SAVING"
	EventDeleteBudget      = "DELETE_BUDGET"
	EventDeleteTransaction = "DELETE_TRANSACTION"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// session owns all writes to one connection. Each session drains its own send
// buffer in a dedicated goroutine, so network I/O never happens under the hub
// lock and never in a request path.
type session struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// Hub tracks websocket sessions per user. A session that stalls, fills its
// send buffer or fails a write is dropped; the client reconnects and resyncs
// via auto-login.
type Hub struct {
	mu    sync.RWMutex
	conns map[string][]*session
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string][]*session)}
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	s := &session{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.conns[userID] = append(h.conns[userID], s)
	h.mu.Unlock()
	go h.writePump(userID, s)
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.RLock()
	var found *session
	for _, s := range h.conns[userID] {
		if s.conn == conn {
			found = s
			break
		}
	}
	h.mu.RUnlock()
	if found != nil {
		h.remove(userID, found)
	}
}

// Publish enqueues the event for every session of the user. It never blocks
// on the network: a session whose buffer is full is a stalled client and gets
// dropped instead of holding up the caller.
func (h *Hub) Publish(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Get().Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	sessions := append([]*session(nil), h.conns[userID]...)
	h.mu.RUnlock()

	for _, s := range sessions {
		select {
		case s.send <- payload:
		case <-s.done:
		default:
			logger.Get().Warn("dropping stalled websocket connection",
				zap.String("user_id", userID))
			h.remove(userID, s)
		}
	}
}

// writePump is the session's only writer. Every write carries a deadline so a
// dead peer cannot wedge the goroutine past writeWait.
func (h *Hub) writePump(userID string, s *session) {
	for {
		select {
		case <-s.done:
			return
		case payload := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Get().Warn("dropping dead websocket connection",
					zap.String("user_id", userID),
					zap.Error(err))
				h.remove(userID, s)
				return
			}
		}
	}
}

func (h *Hub) remove(userID string, target *session) {
	h.mu.Lock()
	remaining := h.conns[userID][:0]
	for _, s := range h.conns[userID] {
		if s != target {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == 0 {
		delete(h.conns, userID)
	} else {
		h.conns[userID] = remaining
	}
	h.mu.Unlock()
	target.close()
}

// ConnectionCount reports active sessions for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}
