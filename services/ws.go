package services

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/talemaro/wheel-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWheelSocket upgrades a viewer connection for one wheel and sends the
// current wheel document as the first frame.
func HandleWheelSocket(hub *Hub, wheels *WheelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wheel id"})
			return
		}

		wheel, err := wheels.GetWheel(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wheel not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("[WS] upgrade error: %v", err)
			return
		}

		client := &Client{
			wheelID: wheel.ID,
			conn:    conn,
			hub:     hub,
			send:    make(chan []byte, 32),
		}
		// Queue the current document before the pumps start so it is the
		// first frame the viewer sees.
		if initial, err := json.Marshal(map[string]interface{}{"type": "wheel", "wheel": wheel}); err == nil {
			client.send <- initial
		}
		hub.addClient(client)
	}
}
