package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/talemaro/wheel-backend/controllers"
	"github.com/talemaro/wheel-backend/middleware"
	"github.com/talemaro/wheel-backend/services"
)

// SetupRoutes wires the REST surface. Reads are public; every mutating wheel
// or entry route sits behind the admin gate.
func SetupRoutes(
	r *gin.Engine,
	admin *controllers.AdminController,
	wheels *controllers.WheelController,
	entries *controllers.EntryController,
	spins *controllers.SpinController,
	sessions *services.SessionService,
) {
	api := r.Group("/api")
	adminOnly := middleware.AdminOnly(sessions)

	// ----------------------
	// Admin session routes
	// ----------------------
	api.POST("/admin/session", admin.CreateSession)          // Log in
	api.POST("/admin/session/refresh", admin.RefreshSession) // Touch / extend
	api.DELETE("/admin/session", admin.DeleteSession)        // Log out

	// ----------------------
	// Wheel routes
	// ----------------------
	api.GET("/wheels", wheels.ListWheels)
	api.GET("/wheels/:id", wheels.GetWheel)
	api.POST("/wheels", adminOnly, wheels.CreateWheel)
	api.PATCH("/wheels/:id", adminOnly, wheels.UpdateWheel)
	api.DELETE("/wheels/:id", adminOnly, wheels.DeleteWheel)

	// ----------------------
	// Entry routes
	// ----------------------
	api.POST("/wheels/:id/entries", adminOnly, entries.AddEntries)
	api.PATCH("/wheels/:id/entries/:entryId", adminOnly, entries.UpdateEntry)
	api.DELETE("/wheels/:id/entries/:entryId", adminOnly, entries.DeleteEntry)

	// ----------------------
	// Spin routes
	// ----------------------
	api.POST("/wheels/:id/spin", spins.Spin)     // Server-side spin
	api.GET("/wheels/:id/spins", spins.History)  // Spin history
}
