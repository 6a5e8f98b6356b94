// Package seed loads recipes from a JSON document into the store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/pageza/recipes-api/backend/internal/model"
	"github.com/pageza/recipes-api/backend/internal/types"
)

// RecipeCreator is the part of the recipe service the seeder needs.
type RecipeCreator interface {
	CreateRecipe(ctx context.Context, fields model.RecipeFields) (*model.Recipe, error)
}

// Result counts what a seeding run did.
type Result struct {
	Created int
	Skipped int
}

// Decode splits a JSON array into its entries. Entries are parsed one at a
// time by Seed so that one malformed entry does not reject the file.
func Decode(r io.Reader) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return entries, nil
}

// Seed creates every entry that POST /recipes would accept and skips the
// rest. It stops on the first store error.
func Seed(ctx context.Context, creator RecipeCreator, entries []json.RawMessage) (Result, error) {
	var res Result
	for i, entry := range entries {
		var req types.CreateRecipeRequest
		if err := json.Unmarshal(entry, &req); err != nil {
			log.Printf("Skipping seed entry %d: %v", i, err)
			res.Skipped++
			continue
		}

		fields, err := req.Validate()
		if err != nil {
			log.Printf("Skipping seed entry %d: %v", i, err)
			res.Skipped++
			continue
		}

		recipe, err := creator.CreateRecipe(ctx, fields)
		if err != nil {
			return res, fmt.Errorf("failed to create seed entry %d: %w", i, err)
		}
		log.Printf("Successfully created recipe %d: %s", recipe.ID, recipe.Title)
		res.Created++
	}
	return res, nil
}
