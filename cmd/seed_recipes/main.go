package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/pageza/recipes-api/backend/config"
	"github.com/pageza/recipes-api/backend/internal/database"
	"github.com/pageza/recipes-api/backend/internal/seed"
	"github.com/pageza/recipes-api/backend/internal/service"
)

func main() {
	file := flag.String("file", "", "JSON array of recipes to create")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open seed file: %v", err)
	}
	defer f.Close()

	entries, err := seed.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	ctx := context.Background()
	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	res, err := seed.Seed(ctx, service.NewRecipeService(db), entries)
	if err != nil {
		log.Fatalf("Seeding stopped after %d recipes: %v", res.Created, err)
	}

	log.Printf("Successfully seeded %d recipes (%d skipped)", res.Created, res.Skipped)
}
