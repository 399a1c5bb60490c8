package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Konrad-GB/voting-website/internal/notify"
	sessionService "github.com/Konrad-GB/voting-website/internal/services/session"
)

const (
	// writeWait is the deadline for writing a frame to the peer
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong before dropping the peer
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound frames; observers only listen
	maxMessageSize = 512

	// sendBufferSize is the per-client outbound queue
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Voters join from arbitrary origins via the QR link
		return true
	},
}

var (
	errSendBufferFull = errors.New("send buffer full")
	errClientClosed   = errors.New("client closed")
)

// wsClient adapts a websocket connection to a hub subscriber
type wsClient struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// Send queues an envelope for the write pump without blocking
func (c *wsClient) Send(envelope *notify.Envelope) error {
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClientClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

// close shuts the send channel exactly once
func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "sessionId is required"})
		return
	}

	if _, err := s.service.GetSession(r.Context(), &sessionService.GetSessionInput{
		SessionID: sessionID,
	}); err != nil {
		respondError(w, err)
		return
	}

	host := r.URL.Query().Get("role") == "host"

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	s.hub.Subscribe(sessionID, host, client)

	go client.writePump()
	go client.readPump(s.hub, sessionID)
}

// readPump consumes frames from the peer until the connection drops.
// Observers send nothing meaningful; reading keeps pong handling alive.
func (c *wsClient) readPump(hub *notify.Hub, sessionID string) {
	defer func() {
		hub.Unsubscribe(sessionID, c)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}
	}
}

// writePump flushes queued envelopes and keeps the connection alive
// with pings
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
