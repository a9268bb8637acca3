package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talemaro/wheel-backend/services"
)

// WheelController exposes wheel CRUD over HTTP.
type WheelController struct {
	Wheels *services.WheelService
	Hub    *services.Hub
}

type createWheelRequest struct {
	Name                string      `json:"name"`
	SpinDurationSeconds interface{} `json:"spinDurationSeconds"`
}

type updateWheelRequest struct {
	Name                *string     `json:"name"`
	SpinDurationSeconds interface{} `json:"spinDurationSeconds"`
}

// ListWheels returns all wheels with their entries. Public.
func (wc *WheelController) ListWheels(c *gin.Context) {
	wheels, err := wc.Wheels.ListWheels()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wheels)
}

// GetWheel returns one wheel with its entries. Public.
func (wc *WheelController) GetWheel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	wheel, err := wc.Wheels.GetWheel(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wheel)
}

// CreateWheel creates an empty wheel.
func (wc *WheelController) CreateWheel(c *gin.Context) {
	var req createWheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wheel, err := wc.Wheels.CreateWheel(req.Name, req.SpinDurationSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wheel)
}

// UpdateWheel applies a partial patch.
func (wc *WheelController) UpdateWheel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateWheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wheel, err := wc.Wheels.UpdateWheel(id, services.WheelPatch{
		Name:                req.Name,
		SpinDurationSeconds: req.SpinDurationSeconds,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	wc.Hub.BroadcastWheel(wheel)
	c.JSON(http.StatusOK, wheel)
}

// DeleteWheel removes a wheel and all its entries.
func (wc *WheelController) DeleteWheel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := wc.Wheels.DeleteWheel(id); err != nil {
		respondError(c, err)
		return
	}

	wc.Hub.BroadcastWheelDeleted(id)
	c.Status(http.StatusNoContent)
}
