package main

import (
	"context"
	"log"

	"ai-minutes-be/internal/bootstrap"
	"ai-minutes-be/internal/config"
	"ai-minutes-be/internal/server"
	"ai-minutes-be/internal/tracer"
	"ai-minutes-be/pkg/database"
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
		log.Println("Background: Starting Pipeline Consumer...")
		if err := container.PipelineService.Consume(context.Background()); err != nil {
			log.Printf("Background Pipeline Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Indexer Consumer...")
		if err := container.IndexerService.Consume(context.Background()); err != nil {
			log.Printf("Background Indexer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
