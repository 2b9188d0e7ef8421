package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"theatre-box-office/internal/config"
	"theatre-box-office/internal/database"
	"theatre-box-office/internal/repositories"
	"theatre-box-office/internal/services"
)

func main() {
	var (
		playID = flag.Int("play", 0, "Play id")
		path   = flag.String("file", "", "Poster image (jpeg, png or gif)")
	)
	flag.Parse()

	if *playID <= 0 || *path == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/upload-play-image -play 1 -file hamlet.png")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewConnection(ctx, database.FromConfig(cfg.Database))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	storage, err := services.NewStorageService(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer file.Close()

	images := services.NewPlayImageService(storage, repositories.NewCatalogRepository(db.DB), logger)
	variants, err := images.UploadPoster(ctx, *playID, file)
	if err != nil {
		log.Fatalf("Upload failed: %v", err)
	}

	for _, v := range variants {
		fmt.Printf("%-10s %4dx%-4d %s\n", v.Name, v.Width, v.Height, v.URL)
	}
}
