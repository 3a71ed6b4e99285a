package flakproxy

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// upgrader mirrors the teacher's: compression enabled, origin checking left
// to the caller's reverse proxy/CORS layer rather than hard-coded here.
var upgrader = websocket.Upgrader{
	ReadBufferSize:    4096,
	WriteBufferSize:   4096,
	EnableCompression: true,
	CheckOrigin:       func(r *http.Request) bool { return true },
}

// client is one connected replay viewer. Unlike the teacher's Client,
// there is no inbound command processing: viewers only watch the recorded
// battle events, so the bridge is a pure broadcaster.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Bridge broadcasts swapped EventRecorder buffers to every connected
// websocket client. It is the out-of-scope "visualization rendering"
// consumer's transport.
type Bridge struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewBridge returns an empty Bridge ready to accept connections.
func NewBridge() *Bridge {
	return &Bridge{clients: make(map[*client]struct{})}
}

// HandleWebSocket upgrades r and registers the connection as a broadcast
// target until it errors out or the bridge shuts the connection down.
func (b *Bridge) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 64)}
	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()

	go b.writePump(c)
	go b.readPump(c)
}

// readPump does nothing with incoming messages but must keep reading so
// the connection notices a client-initiated close.
func (b *Bridge) readPump(c *client) {
	defer b.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *Bridge) writePump(c *client) {
	defer func() {
		b.remove(c)
		c.conn.Close()
	}()
	for buf := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			return
		}
	}
}

func (b *Bridge) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}

// Broadcast sends buf to every connected client. A client whose send
// buffer is full is skipped for this buffer rather than blocking the
// whole broadcast, matching the teacher's drop-slow-clients behavior.
func (b *Bridge) Broadcast(buf []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for c := range b.clients {
		select {
		case c.send <- buf:
		default:
		}
	}
}

// NumClients reports how many clients are currently connected, mostly
// useful for tests and a health-check endpoint.
func (b *Bridge) NumClients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
