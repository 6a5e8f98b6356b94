package types

import (
	"strconv"
	"time"

	"github.com/pageza/recipes-api/backend/internal/model"
)

// TimestampLayout renders instants without any zone suffix.
const TimestampLayout = "2006-01-02 15:04:05"

// RecipeDetail is the single-item wire shape, with timestamps.
type RecipeDetail struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	MakingTime  string `json:"making_time"`
	Serves      string `json:"serves"`
	Ingredients string `json:"ingredients"`
	Cost        string `json:"cost"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// RecipeSummary is the list wire shape, without timestamps.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	MakingTime  string `json:"making_time"`
	Serves      string `json:"serves"`
	Ingredients string `json:"ingredients"`
	Cost        string `json:"cost"`
}

// RecipeResponse wraps one recipe in a one-element list. Existing clients
// index recipe[0], so the list envelope is kept for single items.
type RecipeResponse struct {
	Message string         `json:"message"`
	Recipe  []RecipeDetail `json:"recipe"`
}

// RecipesListResponse is the body of GET /recipes.
type RecipesListResponse struct {
	Recipes []RecipeSummary `json:"recipes"`
}

// MessageResponse is a bare message body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateFailureResponse is the soft failure body returned with 200 by POST /recipes.
type CreateFailureResponse struct {
	Message  string `json:"message"`
	Required string `json:"required"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Shaper converts stored recipes into wire payloads using a fixed location
// for timestamp rendering.
type Shaper struct {
	loc *time.Location
}

// NewShaper returns a Shaper that renders timestamps in loc (time.Local when nil).
func NewShaper(loc *time.Location) *Shaper {
	if loc == nil {
		loc = time.Local
	}
	return &Shaper{loc: loc}
}

// FormatTimestamp renders t as YYYY-MM-DD HH:MM:SS in the shaper's location.
func (s *Shaper) FormatTimestamp(t time.Time) string {
	return t.In(s.loc).Format(TimestampLayout)
}

func (s *Shaper) Detail(r *model.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		MakingTime:  r.MakingTime,
		Serves:      r.Serves,
		Ingredients: r.Ingredients,
		Cost:        strconv.Itoa(r.Cost),
		CreatedAt:   s.FormatTimestamp(r.CreatedAt),
		UpdatedAt:   s.FormatTimestamp(r.UpdatedAt),
	}
}

func (s *Shaper) Summary(r *model.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		MakingTime:  r.MakingTime,
		Serves:      r.Serves,
		Ingredients: r.Ingredients,
		Cost:        strconv.Itoa(r.Cost),
	}
}

// Single builds the one-element envelope used by create, get and update.
func (s *Shaper) Single(message string, r *model.Recipe) RecipeResponse {
	return RecipeResponse{
		Message: message,
		Recipe:  []RecipeDetail{s.Detail(r)},
	}
}

// List builds the reduced list payload. An empty store yields an empty array, never null.
func (s *Shaper) List(recipes []*model.Recipe) RecipesListResponse {
	out := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, s.Summary(r))
	}
	return RecipesListResponse{Recipes: out}
}

// Details shapes every recipe with timestamps, for snapshot exports.
func (s *Shaper) Details(recipes []*model.Recipe) []RecipeDetail {
	out := make([]RecipeDetail, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, s.Detail(r))
	}
	return out
}
