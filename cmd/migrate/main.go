package main

import (
	"log"

	"xlai-be/internal/config"
	"xlai-be/internal/model"
	"xlai-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Conversation{},
		&model.Message{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("✅ Migrations complete")
}
