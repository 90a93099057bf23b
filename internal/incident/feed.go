package incident

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// FeedHub fans critical incidents out to connected ops dashboards. Incidents
// arrive over Redis pub/sub, so every engine instance serves the same feed.
type FeedHub struct {
	RegisterCh   chan *FeedClient
	UnregisterCh chan *FeedClient

	clients   map[*FeedClient]bool
	broadcast chan []byte
	Storage   Store
}

func NewFeedHub(s Store) *FeedHub {
	return &FeedHub{
		RegisterCh:   make(chan *FeedClient),
		UnregisterCh: make(chan *FeedClient),
		clients:      make(map[*FeedClient]bool),
		broadcast:    make(chan []byte, 64),
		Storage:      s,
	}
}

// Run is the hub dispatcher goroutine.
func (h *FeedHub) Run() {
	h.startPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			h.clients[client] = true

		case client := <-h.UnregisterCh:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}

		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// Slow consumer: drop the connection, not the feed.
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// startPubSubListener subscribes to the Redis incident channel and forwards
// every message into the hub's broadcast channel.
func (h *FeedHub) startPubSubListener() {
	go func() {
		pubsub := h.Storage.SubscribeIncidents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			h.broadcast <- []byte(msg.Payload)
		}
	}()
}

// FeedClient is one connected ops dashboard.
type FeedClient struct {
	Hub  *FeedHub
	Conn *websocket.Conn
	Send chan []byte
}

// Run starts the client's pumps.
func (c *FeedClient) Run() {
	go c.writePump()
	go c.readPump()
}

// readPump exists only to notice the peer going away; the feed is one-way.
func (c *FeedClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("feed client read error: %v", err)
			}
			break
		}
	}
}

func (c *FeedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
