package main

import (
	"context"
	"log"

	"xlai-be/internal/bootstrap"
	"xlai-be/internal/config"
	"xlai-be/internal/server"
	"xlai-be/internal/tracer"
	"xlai-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Suggestion Log Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting Retention Sweeper...")
		container.RetentionService.Run(context.Background())
	}()

	if err := container.DeliveryService.Start(); err != nil {
		log.Printf("[WARN] Delivery service not started: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
