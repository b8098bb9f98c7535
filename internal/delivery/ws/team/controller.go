package ws_team

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/keyduel/core/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Controller struct {
	hub    *Hub
	logger *slog.Logger
}

func NewController(hub *Hub) *Controller {
	return &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/teams/:team_code/ws", c.serve)
}

func (c *Controller) serve(ctx *gin.Context) {
	// Hub keys must match what the HTTP layer broadcasts with.
	teamCode := model.TeamCode(strings.ToUpper(ctx.Param("team_code")))
	playerID := ctx.Query("player_id")

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:      c.hub,
		send:     make(chan Event, 8),
		playerID: playerID,
		teamCode: teamCode,
	}
	c.hub.register <- client

	go c.writePump(client, conn)
	go c.readPump(client, conn)
}

// readPump drains the connection so pings and closes are processed;
// clients never send meaningful frames.
func (c *Controller) readPump(client *Client, conn *websocket.Conn) {
	defer func() {
		client.hub.unregister <- client
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Controller) writePump(client *Client, conn *websocket.Conn) {
	defer conn.Close()

	for event := range client.send {
		if err := conn.WriteJSON(event); err != nil {
			break
		}
	}
}
