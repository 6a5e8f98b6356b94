// Package export writes a JSON snapshot of every recipe to an S3 bucket.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipes-api/backend/internal/model"
	"github.com/pageza/recipes-api/backend/internal/types"
)

// ObjectPutter is the subset of *s3.Client the exporter needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// RecipeLister returns every stored recipe.
type RecipeLister interface {
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
}

// Snapshot is the uploaded document. Recipes use the single-item wire shape.
type Snapshot struct {
	ExportedAt string               `json:"exported_at"`
	Count      int                  `json:"count"`
	Recipes    []types.RecipeDetail `json:"recipes"`
}

type Exporter struct {
	recipes  RecipeLister
	uploader ObjectPutter
	bucket   string
	shaper   *types.Shaper
	now      func() time.Time
	newID    func() string
}

func NewExporter(recipes RecipeLister, uploader ObjectPutter, bucket string, shaper *types.Shaper) *Exporter {
	return &Exporter{
		recipes:  recipes,
		uploader: uploader,
		bucket:   bucket,
		shaper:   shaper,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Export uploads a snapshot and returns its object key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	recipes, err := e.recipes.ListRecipes(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list recipes: %w", err)
	}

	now := e.now()
	body, err := json.MarshalIndent(Snapshot{
		ExportedAt: e.shaper.FormatTimestamp(now),
		Count:      len(recipes),
		Recipes:    e.shaper.Details(recipes),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := ObjectKey(now, e.newID())
	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to s3://%s/%s: %w", e.bucket, key, err)
	}

	return key, nil
}

// ObjectKey names a snapshot so keys sort by export time.
func ObjectKey(at time.Time, id string) string {
	return fmt.Sprintf("recipes/%s-%s.json", at.UTC().Format("20060102T150405Z"), id)
}
