package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pageza/recipes-api/backend/config"
	"github.com/pageza/recipes-api/backend/internal/database"
	"github.com/pageza/recipes-api/backend/internal/export"
	"github.com/pageza/recipes-api/backend/internal/service"
	"github.com/pageza/recipes-api/backend/internal/types"
)

func main() {
	bucket := flag.String("bucket", "", "Destination bucket (defaults to S3_BUCKET_NAME)")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall export timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *bucket != "" {
		cfg.S3BucketName = *bucket
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid timezone: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	s3Cfg, err := cfg.NewS3Config(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	exporter := export.NewExporter(service.NewRecipeService(db), s3Cfg.Client, s3Cfg.BucketName, types.NewShaper(loc))
	key, err := exporter.Export(ctx)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fmt.Printf("Exported recipes to s3://%s/%s\n", s3Cfg.BucketName, key)
}
