package services

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/talemaro/wheel-backend/utils/logger"
)

// Client is one websocket viewer of a wheel. Viewers only receive; anything
// they send is discarded, the read pump exists to notice disconnects.
type Client struct {
	wheelID uint
	conn    *websocket.Conn
	hub     *Hub
	send    chan []byte
	once    sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Viewer wheel %d] disconnected", c.wheelID)
			} else {
				logger.Debugf("[Viewer wheel %d] read error: %v", c.wheelID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Viewer wheel %d] write error: %v", c.wheelID, err)
			return
		}
	}
}
