package main

import (
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"travelmate-be/internal/model"
	"travelmate-be/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM Migration...")

	// Extensions first; AutoMigrate cannot create them.
	color.Cyan("Step 1: Setting up Extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.UserSession{},
		&model.PasswordResetOTP{},
		&model.Conversation{},
		&model.ChatMessage{},
		&model.TravelPreference{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Green("Migration completed: %d tables up to date", len(models))
}
