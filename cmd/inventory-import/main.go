package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dimitrije/inventory-api/internal/config"
	"github.com/dimitrije/inventory-api/internal/inventory"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/storage"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: inventory-import <items.json>")
		os.Exit(1)
	}

	body, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read %s: %v", os.Args[1], err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	store, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	service := inventory.NewService(store, cfg.Storage.InventoryKey, logger)

	items, err := service.Upsert(ctx, body)
	if err != nil {
		var verr *inventory.ValidationError
		if errors.As(err, &verr) {
			for _, d := range verr.Details {
				fmt.Fprintln(os.Stderr, d)
			}
		}
		closeStore()
		log.Fatalf("Failed to import inventory: %v", err)
	}

	fmt.Printf("Successfully imported %s: inventory now holds %d items\n", os.Args[1], len(items))
}
