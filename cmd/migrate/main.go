package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/pageza/recipes-api/backend/config"
	"github.com/pageza/recipes-api/backend/internal/database"
	"github.com/pageza/recipes-api/backend/migrations"
)

func main() {
	list := flag.Bool("list", false, "List embedded migrations and exit")
	flag.Parse()

	if *list {
		all, err := migrations.All()
		if err != nil {
			log.Fatalf("failed to read migrations: %v", err)
		}
		for _, m := range all {
			fmt.Println(m.Name)
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	if cfg.DBDriver == config.DriverSQLite {
		db, err := database.New(cfg)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(ctx, db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
		fmt.Println("SQLite schema is up to date.")
		return
	}

	db, err := database.OpenSQL(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	applied, err := database.ApplySQLMigrations(ctx, db)
	if err != nil {
		log.Fatalf("migration failed after applying %v: %v", applied, err)
	}

	for _, name := range applied {
		fmt.Printf("Successfully applied migration: %s\n", name)
	}
	fmt.Println("All migrations applied successfully.")
}
