package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/talemaro/wheel-backend/config"
	"github.com/talemaro/wheel-backend/controllers"
	"github.com/talemaro/wheel-backend/routes"
	"github.com/talemaro/wheel-backend/services"
)

func main() {
	// Load env variables
	cfg := config.Load()

	// Connect to database
	db := config.SetupDatabase(cfg.DatabaseURL)

	// Services
	sessions := services.NewSessionService(db, cfg.AdminToken, cfg.SessionTTL)
	wheelSvc := services.NewWheelService(db)
	spinSvc := services.NewSpinService(db)
	hub := services.NewHub()

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "x-admin-token", "x-admin-session"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(
		r,
		&controllers.AdminController{Sessions: sessions},
		&controllers.WheelController{Wheels: wheelSvc, Hub: hub},
		&controllers.EntryController{Wheels: wheelSvc, Hub: hub},
		&controllers.SpinController{Spins: spinSvc, Hub: hub},
		sessions,
	)

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket wheel viewer endpoint
	r.GET("/ws/wheels/:id", services.HandleWheelSocket(hub, wheelSvc))

	log.Printf("🎡 Wheel backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
