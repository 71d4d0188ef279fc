package main

import (
	"pens_market/internal/config" // Custom import path (Config)
	"pens_market/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
