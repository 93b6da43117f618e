package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/backend"
	"github.com/jafarshop/coffeeshop/internal/config"
	"github.com/jafarshop/coffeeshop/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-coffee/main.go <name>")
		fmt.Println("Example: go run cmd/find-coffee/main.go \"dark roast\"")
		os.Exit(1)
	}

	query := strings.Join(os.Args[1:], " ")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := backend.NewClient(cfg.Backend, logger)
	catalog := service.NewCatalogService(client, cfg.Catalog, logger)

	fmt.Printf("🔍 Searching for coffee: %s\n\n", query)

	matches, err := catalog.Find(context.Background(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query the coffee backend: %v\n", err)
		os.Exit(1)
	}

	if len(matches) == 0 {
		fmt.Printf("❌ No coffee matching '%s' at %s.\n", query, cfg.Backend.BaseURL)
		os.Exit(1)
	}

	fmt.Printf("✅ Found %d coffee(s)!\n\n", len(matches))
	for _, m := range matches {
		fmt.Printf("ID: %d\n", m.ID)
		fmt.Printf("Name: %s\n", m.Name)
		fmt.Printf("Price: %s\n", m.Price.StringFixed(2))
		if m.Description != "" {
			fmt.Printf("Description: %s\n", m.Description)
		}
		if m.ImgURL == "" {
			fmt.Printf("Image: none (shown as %s)\n", m.DisplayImage)
		} else {
			fmt.Printf("Image: %s\n", m.ImgURL)
		}
		fmt.Println()
	}

	fmt.Printf("To add one to the cart, POST its product_id to /v1/cart/items\n")
}
