package main

import (
	"log"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/config"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/database"
)

func main() {
	log.Println("Starting schema migration...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Cannot establish database connection:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if err := database.SeedReferenceData(db); err != nil {
		log.Fatal("Reference data seed failed:", err)
	}

	log.Println("Migration completed successfully!")
}
