package config

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/talemaro/wheel-backend/models"
)

// SetupDatabase connects to Postgres and runs migrations. The handle is
// returned rather than stored in a package variable; services receive it
// explicitly.
func SetupDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	log.Println("✅ Database connected and migrated")
	return db
}

// Migrate runs schema migrations for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Wheel{},
		&models.Person{},
		&models.Entry{},
		&models.AdminSession{},
		&models.SpinResult{},
	)
}
