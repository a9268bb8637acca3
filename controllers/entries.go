package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talemaro/wheel-backend/services"
)

// EntryController exposes entry mutations over HTTP.
type EntryController struct {
	Wheels *services.WheelService
	Hub    *services.Hub
}

type addEntriesRequest struct {
	Label      string      `json:"label"`
	PersonName string      `json:"personName"`
	Count      interface{} `json:"count"`
}

type updateEntryRequest struct {
	Label      string `json:"label"`
	PersonName string `json:"personName"`
	Disabled   *bool  `json:"disabled"`
}

// AddEntries bulk-creates entries on a wheel, all credited to one person.
func (ec *EntryController) AddEntries(c *gin.Context) {
	wheelID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req addEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := ec.Wheels.AddEntries(wheelID, req.Label, req.PersonName, services.CoerceCount(req.Count))
	if err != nil {
		respondError(c, err)
		return
	}

	ec.broadcastWheel(wheelID)
	c.JSON(http.StatusCreated, entries)
}

// UpdateEntry applies a partial patch to one entry.
func (ec *EntryController) UpdateEntry(c *gin.Context) {
	wheelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	entryID, ok := parseID(c, "entryId")
	if !ok {
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := ec.Wheels.UpdateEntry(wheelID, entryID, services.EntryPatch{
		Label:      req.Label,
		PersonName: req.PersonName,
		Disabled:   req.Disabled,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	ec.broadcastWheel(wheelID)
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes one entry.
func (ec *EntryController) DeleteEntry(c *gin.Context) {
	wheelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	entryID, ok := parseID(c, "entryId")
	if !ok {
		return
	}

	if err := ec.Wheels.DeleteEntry(wheelID, entryID); err != nil {
		respondError(c, err)
		return
	}

	ec.broadcastWheel(wheelID)
	c.Status(http.StatusNoContent)
}

func (ec *EntryController) broadcastWheel(wheelID uint) {
	wheel, err := ec.Wheels.GetWheel(wheelID)
	if err != nil {
		return
	}
	ec.Hub.BroadcastWheel(wheel)
}
