package main

import (
	"context"
	"log"

	"hcp-crm-be/internal/config"
	"hcp-crm-be/internal/model"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/internal/repository/unitofwork"
	"hcp-crm-be/internal/service"
	"hcp-crm-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	hcpService := service.NewHCPService(unitofwork.NewRepositoryFactory(db), false, sysLogger)

	log.Println("Seeding demo HCPs...")
	n, err := hcpService.Seed(context.Background())
	if err != nil {
		log.Fatalf("Error: Seeding failed: %v", err)
	}
	if n == 0 {
		log.Println("HCP table already populated, skipping.")
		return
	}
	log.Printf("Created %d HCPs.", n)
}
