package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/pageza/recipes-api/backend/internal/model"
	"github.com/pageza/recipes-api/backend/migrations"
	"gorm.io/gorm"
)

// RunMigrations creates the recipes table. SQLite uses gorm auto-migration;
// PostgreSQL applies the embedded SQL migrations.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		log.Printf("Using GORM auto-migration for SQLite")
		return db.WithContext(ctx).AutoMigrate(&model.Recipe{})
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	_, err = ApplySQLMigrations(ctx, sqlDB)
	return err
}

// ApplySQLMigrations runs every embedded migration that has not been recorded in
// schema_migrations yet. Each file is applied and recorded in one transaction.
// It returns the names of the files applied by this call.
func ApplySQLMigrations(ctx context.Context, db *sql.DB) ([]string, error) {
	all, err := migrations.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var applied []string
	for _, m := range all {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE name = $1", m.Name).Scan(&count); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Printf("Skipping migration %s (already applied)", m.Name)
			continue
		}

		if err := applyOne(ctx, db, m); err != nil {
			return applied, err
		}
		log.Printf("Applied migration %s", m.Name)
		applied = append(applied, m.Name)
	}

	return applied, nil
}

func applyOne(ctx context.Context, db *sql.DB, m migrations.Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction for %s: %w", m.Name, err)
	}

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %s: %w", m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", m.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", m.Name, err)
	}
	return nil
}
