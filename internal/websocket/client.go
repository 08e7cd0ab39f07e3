package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"chat-rooms-backend/internal/hub"

	"github.com/gorilla/websocket"
)

const (
	eventBuffer  = 32
	pingInterval = 30 * time.Second
	maxFrameSize = 512 * 1024
)

// WSClient is one live socket. Events flow in through a buffered channel so
// a slow peer never blocks the hub; the write pump owns the connection for
// writes.
type WSClient struct {
	conn   *websocket.Conn
	events chan hub.Event
	connID string

	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	isClosed  bool
}

func newWSClient(conn *websocket.Conn, connID string) *WSClient {
	return &WSClient{
		conn:   conn,
		events: make(chan hub.Event, eventBuffer),
		connID: connID,
		done:   make(chan struct{}),
	}
}

// shutdown signals both pumps to stop. Safe to call from any goroutine,
// any number of times.
func (cl *WSClient) shutdown() {
	cl.closeOnce.Do(func() {
		close(cl.done)
	})
}

func (cl *WSClient) keepAlive() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.conn.WriteMessage(websocket.PingMessage, nil)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("ping error for connection %s: %v", cl.connID, err)
				cl.shutdown()
				return
			}
		}
	}
}

func (cl *WSClient) writeEvents() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case event := <-cl.events:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.conn.WriteJSON(event)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("error writing to connection %s: %v", cl.connID, err)
				cl.shutdown()
				return
			}
			addDelivered(1)
		}
	}
}

func (cl *WSClient) readCommands(h *Handler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic in readCommands: %v", r)
		}

		cl.shutdown()
		h.dropConnection(cl)
		log.Printf("connection %s closed", cl.connID)
	}()

	cl.conn.SetReadLimit(maxFrameSize)

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			log.Printf("error reading from connection %s: %v", cl.connID, err)
			break
		}

		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			h.sendError(cl.connID, "Malformed command")
			continue
		}

		h.dispatch(cl.connID, cmd)
	}
}
