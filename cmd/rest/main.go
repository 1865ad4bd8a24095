package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hcp-crm-be/internal/bootstrap"
	"hcp-crm-be/internal/config"
	"hcp-crm-be/internal/model"
	"hcp-crm-be/internal/server"
	"hcp-crm-be/internal/tracer"
	"hcp-crm-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Otel)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if driver, _, _ := database.ParseURL(cfg.Database.Connection); driver == database.DriverSQLite {
		// Local SQLite databases are created on first start.
		if err := gormDB.AutoMigrate(model.All()...); err != nil {
			log.Panicf("Unable to migrate SQLite schema: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Ai.SeedDemoHCPs {
		if n, err := container.HCPService.Seed(ctx); err != nil {
			log.Printf("Warn: demo HCP seeding failed: %v", err)
		} else if n > 0 {
			log.Printf("Seeded %d demo HCPs", n)
		}
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
