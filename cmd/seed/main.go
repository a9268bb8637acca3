package main

import (
	"log"

	"github.com/talemaro/wheel-backend/config"
	"github.com/talemaro/wheel-backend/models"
	"github.com/talemaro/wheel-backend/services"
)

func main() {
	cfg := config.Load()
	db := config.SetupDatabase(cfg.DatabaseURL)

	var count int64
	if err := db.Model(&models.Wheel{}).Count(&count).Error; err != nil {
		log.Fatalf("[FATAL] Failed to check existing wheels: %v", err)
	}
	if count > 0 {
		log.Println("Database already seeded. Skipping.")
		return
	}

	wheels := services.NewWheelService(db)

	wheel, err := wheels.CreateWheel("Launch Celebration", 5)
	if err != nil {
		log.Fatalf("[FATAL] Failed to create seed wheel: %v", err)
	}

	seedEntries := []struct {
		personName string
		label      string
		count      int
	}{
		{"Alex", "Team Lunch Voucher", 2},
		{"Jordan", "Extra Vacation Day", 1},
		{"Sam", "Coffee Gift Card", 3},
		{"Riley", "Work From Home Friday", 1},
	}

	for _, e := range seedEntries {
		if _, err := wheels.AddEntries(wheel.ID, e.label, e.personName, e.count); err != nil {
			log.Fatalf("[FATAL] Failed to seed entries for %s: %v", e.personName, err)
		}
	}

	log.Println("✅ Seed data created")
}
