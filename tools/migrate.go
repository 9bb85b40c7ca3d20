package main

import (
	"fmt"
	"os"

	"parcel-tracking/config"
	"parcel-tracking/database"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate  - Apply migrations, foreign keys and indexes")
		fmt.Println("  go run tools/migrate.go check    - Report missing tables and constraints")
		return
	}

	_ = godotenv.Load()
	cfg := config.Load()

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(cfg); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "check":
		if _, err := database.Open(cfg); err != nil {
			fmt.Printf("❌ Could not connect: %v\n", err)
			os.Exit(1)
		}
		missingTables, missingConstraints := database.CheckSchema(database.GetDB())
		for _, t := range missingTables {
			fmt.Printf("⚠️  missing table: %s\n", t)
		}
		for _, c := range missingConstraints {
			fmt.Printf("⚠️  missing constraint: %s\n", c)
		}
		if len(missingTables)+len(missingConstraints) > 0 {
			os.Exit(1)
		}
		fmt.Println("✅ Schema is up to date")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, check")
	}
}
