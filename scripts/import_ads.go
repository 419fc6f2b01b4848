package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fitforge/fitforge/internal/config"
	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/internal/services"
)

// Bulk-imports historical ads from a JSON file into the corpus.
//
//	go run scripts/import_ads.go <user_id> <ads.json>
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: import_ads <user_id> <ads.json>")
		os.Exit(1)
	}

	var userID uint
	if _, err := fmt.Sscanf(os.Args[1], "%d", &userID); err != nil {
		fmt.Printf("Invalid user id %q\n", os.Args[1])
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", os.Args[2], err)
		os.Exit(1)
	}

	var ads []services.AdImport
	if err := json.Unmarshal(data, &ads); err != nil {
		fmt.Printf("Failed to parse %s: %v\n", os.Args[2], err)
		os.Exit(1)
	}

	adService := services.NewHistoricalAdService(models.GetDB())
	result, err := adService.Import(userID, ads)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d ads, skipped %d duplicates\n", result.Imported, result.Skipped)
}
