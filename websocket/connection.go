// Package websocket provides the WebSocket server and connection handling
// for live board updates.
// file: websocket/connection.go
package websocket

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go-con-board/logger"
)

// WSConn is an interface for the WebSocket connection.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection represents a single WebSocket connection for one board viewer.
type Connection struct {
	conn      WSConn
	send      chan []byte
	eventSlug string
}

var (
	connections   = make(map[*Connection]bool)
	connectionsMu sync.Mutex
)

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 2048
)

// Upgrader upgrades HTTP requests to WebSocket connections.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Board updates are public read-only data.
		return true
	},
}

// ServeWs upgrades the HTTP request to a WebSocket connection and starts
// the read and write pumps. The client names the event it is watching
// with the "event" query parameter.
func ServeWs(w http.ResponseWriter, r *http.Request) {
	eventSlug := r.URL.Query().Get("event")
	if eventSlug == "" {
		logger.Error.Println("No event selected; rejecting WebSocket connection")
		http.Error(w, "No event selected", http.StatusBadRequest)
		return
	}

	logger.Info.Printf("[ServeWs] upgrading to WS: remoteAddr=%v, event=%q", r.RemoteAddr, eventSlug)
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{
		conn:      wsConn,
		send:      make(chan []byte, 256),
		eventSlug: eventSlug,
	}

	registerConnection(c)
	go PublishBoardConnections(ConnectionCount(eventSlug), eventSlug)

	go c.readPump()
	go c.writePump()
}

// readPump handles inbound messages from the client.
func (c *Connection) readPump() {
	defer func() {
		unregisterConnection(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Warn.Printf("[readPump] read error from %v: %v", c.conn.RemoteAddr(), err)
			break
		}
		if messageType != websocket.TextMessage {
			logger.Debug.Printf("[readPump] ignoring non-text messageType=%d", messageType)
			continue
		}

		var bm BoardMessage
		if err := json.Unmarshal(message, &bm); err != nil {
			logger.Warn.Printf("[readPump] invalid JSON from %v: %v", c.conn.RemoteAddr(), err)
			continue
		}
		handleIncoming(c, bm)
	}
}

// writePump handles outbound messages to the client, including periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				logger.Debug.Printf("[writePump] send channel closed for %v", c.conn.RemoteAddr())
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		}
	}
}

// BoardMessage represents the JSON structure of messages from clients.
type BoardMessage struct {
	Action string `json:"action"`
	Event  string `json:"event"`
}

// handleIncoming processes an inbound JSON message. Viewers may switch
// boards without reconnecting.
func handleIncoming(c *Connection, bm BoardMessage) {
	logger.Debug.Printf("[handleIncoming] action=%s, event=%s", bm.Action, bm.Event)
	switch bm.Action {
	case "subscribe":
		if bm.Event == "" {
			logger.Warn.Printf("subscribe without event from %v; ignoring", c.conn.RemoteAddr())
			return
		}
		connectionsMu.Lock()
		c.eventSlug = bm.Event
		connectionsMu.Unlock()
		logger.Info.Printf("Viewer %v now watching event %s", c.conn.RemoteAddr(), bm.Event)
	default:
		logger.Debug.Printf("Unhandled action: %s", bm.Action)
	}
}

// registerConnection adds the given connection to the global connections map.
func registerConnection(c *Connection) {
	connectionsMu.Lock()
	defer connectionsMu.Unlock()
	connections[c] = true
}

// unregisterConnection removes the given connection from the global connections map.
func unregisterConnection(c *Connection) {
	connectionsMu.Lock()
	defer connectionsMu.Unlock()
	delete(connections, c)
}

// ConnectionCount reports how many viewers are watching the given event.
func ConnectionCount(eventSlug string) int {
	connectionsMu.Lock()
	defer connectionsMu.Unlock()
	n := 0
	for c := range connections {
		if c.eventSlug == eventSlug {
			n++
		}
	}
	return n
}
