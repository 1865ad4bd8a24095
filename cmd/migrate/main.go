package main

import (
	"log"

	"hcp-crm-be/internal/config"
	"hcp-crm-be/internal/model"
	"hcp-crm-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	models := model.All()
	log.Printf("Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
