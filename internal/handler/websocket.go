package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// Register registers the event feed route
func (h *WebSocketHandler) Register(e *echo.Echo) {
	e.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket subscribes the connection to question events, optionally
// limited to the category query parameter
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	categoryID := 0
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			return echo.NewHTTPError(http.StatusBadRequest)
		}
		categoryID = id
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := ws.Upgrader.Upgrade(c.Response().Writer, c.Request(), nil)
	if err != nil {
		return err
	}

	client := ws.NewClient(h.hub, conn, categoryID)
	h.hub.Register(client)

	// Start goroutines for reading and writing
	go client.ReadPump()
	go client.WritePump()

	return nil
}
