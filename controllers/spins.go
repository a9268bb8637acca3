package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talemaro/wheel-backend/services"
)

// SpinController exposes server-side spins and their history.
type SpinController struct {
	Spins *services.SpinService
	Hub   *services.Hub
}

// Spin picks a random active entry and records the result. Public, like the
// client-side spin it mirrors.
func (sc *SpinController) Spin(c *gin.Context) {
	wheelID, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := sc.Spins.Spin(wheelID)
	if err != nil {
		respondError(c, err)
		return
	}

	sc.Hub.BroadcastSpin(result)
	c.JSON(http.StatusCreated, result)
}

// History lists past spin results for a wheel.
func (sc *SpinController) History(c *gin.Context) {
	wheelID, ok := parseID(c, "id")
	if !ok {
		return
	}

	results, err := sc.Spins.History(wheelID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
