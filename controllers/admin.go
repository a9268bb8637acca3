package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talemaro/wheel-backend/middleware"
	"github.com/talemaro/wheel-backend/services"
)

// AdminController exposes the admin session lifecycle over HTTP.
type AdminController struct {
	Sessions *services.SessionService
}

type createSessionRequest struct {
	Token string `json:"token"`
}

// CreateSession exchanges the admin token for a new session.
func (ac *AdminController) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin token is required"})
		return
	}

	session, err := ac.Sessions.Issue(req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// RefreshSession touches the session named in the header, extending its
// expiry by a full TTL.
func (ac *AdminController) RefreshSession(c *gin.Context) {
	sessionID := c.GetHeader(middleware.HeaderAdminSession)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing admin session"})
		return
	}

	session, err := ac.Sessions.Touch(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession revokes the session named in the header. Always 204, even
// when the session is unknown.
func (ac *AdminController) DeleteSession(c *gin.Context) {
	sessionID := c.GetHeader(middleware.HeaderAdminSession)
	if sessionID != "" {
		if err := ac.Sessions.Revoke(sessionID); err != nil {
			respondError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}
