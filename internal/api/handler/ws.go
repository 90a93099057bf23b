package handler

import (
	"net/http"

	"festago/backend/internal/incident"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Ops dashboards connect cross-origin; tighten this in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeIncidentFeed upgrades the connection and streams critical incidents to
// the ops dashboard as they happen.
func (h *Handler) ServeIncidentFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &incident.FeedClient{
		Hub:  h.Feed,
		Conn: conn,
		Send: make(chan []byte, 64),
	}

	h.Feed.RegisterCh <- client
	client.Run()
}
