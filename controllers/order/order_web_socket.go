package orderControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

// feedClient is one dashboard connection. Only its write pump writes data
// frames to conn.
type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

func (cl *feedClient) writePump() {
	for msg := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			cl.conn.Close()
			return
		}
	}
}

// Feed pushes new orders and status changes to connected admin dashboards.
type Feed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*feedClient]struct{}),
	}
}

// GET /admin/feed/ws
func (f *Feed) OrderWebSocketHandler(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &feedClient{conn: conn, send: make(chan []byte, sendBuffer)}
	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()
	go client.writePump()

	defer f.remove(client)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// FeedEvent is one message on the feed.
type FeedEvent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Broadcast queues v for every client without waiting on the network.
// A client whose queue is full is disconnected.
func (f *Feed) Broadcast(eventType string, v any) {
	data, err := json.Marshal(FeedEvent{Type: eventType, Data: v})
	if err != nil {
		log.Printf("❌ Failed to encode feed event: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for cl := range f.clients {
		select {
		case cl.send <- data:
		default:
			log.Printf("⚠️ Dropping slow order feed client %s", cl.conn.RemoteAddr())
			f.drop(cl)
		}
	}
}

func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for cl := range f.clients {
		_ = cl.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		f.drop(cl)
	}
}

func (f *Feed) remove(cl *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drop(cl)
}

// drop must be called with f.mu held.
func (f *Feed) drop(cl *feedClient) {
	if _, ok := f.clients[cl]; !ok {
		return
	}
	delete(f.clients, cl)
	close(cl.send)
	cl.conn.Close()
}
