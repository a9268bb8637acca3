package services

import (
	"encoding/json"
	"sync"

	"github.com/talemaro/wheel-backend/models"
	"github.com/talemaro/wheel-backend/utils/logger"
)

// Hub fans wheel updates out to websocket viewers. Clients register against
// one wheel id and receive the full wheel document after every mutation plus
// each spin result.
type Hub struct {
	mu      sync.Mutex
	viewers map[uint]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{viewers: make(map[uint]map[*Client]bool)}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	if h.viewers[c.wheelID] == nil {
		h.viewers[c.wheelID] = make(map[*Client]bool)
	}
	h.viewers[c.wheelID][c] = true
	total := len(h.viewers[c.wheelID])
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Infof("[Hub] viewer joined wheel %d (total=%d)", c.wheelID, total)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if set, ok := h.viewers[c.wheelID]; ok {
		if set[c] {
			delete(set, c)
			c.Close()
		}
		if len(set) == 0 {
			delete(h.viewers, c.wheelID)
		}
	}
	h.mu.Unlock()
}

// BroadcastWheel pushes the current wheel document to every viewer of that
// wheel.
func (h *Hub) BroadcastWheel(wheel *models.Wheel) {
	h.broadcast(wheel.ID, map[string]interface{}{
		"type":  "wheel",
		"wheel": wheel,
	})
}

// BroadcastWheelDeleted tells viewers the wheel is gone.
func (h *Hub) BroadcastWheelDeleted(wheelID uint) {
	h.broadcast(wheelID, map[string]interface{}{
		"type":    "wheel_deleted",
		"wheelId": wheelID,
	})
}

// BroadcastSpin pushes a spin result to every viewer of the wheel.
func (h *Hub) BroadcastSpin(result *models.SpinResult) {
	h.broadcast(result.WheelID, map[string]interface{}{
		"type": "spin",
		"spin": result,
	})
}

func (h *Hub) broadcast(wheelID uint, payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("[Hub] failed to marshal broadcast: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.viewers[wheelID] {
		select {
		case c.send <- msg:
		default:
			// Viewer is not draining its channel; drop it.
			delete(h.viewers[wheelID], c)
			c.Close()
		}
	}
}
