package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes-api/backend/internal/model"
	"github.com/pageza/recipes-api/backend/internal/service"
	"github.com/pageza/recipes-api/backend/internal/types"
)

const (
	msgRecipeCreated      = "Recipe successfully created!"
	msgRecipeCreateFailed = "Recipe creation failed!"
	msgRecipeDetails      = "Recipe details by id"
	msgRecipeUpdated      = "Recipe successfully updated!"
	msgRecipeRemoved      = "Recipe successfully removed!"
	msgNoRecipeFound      = "No recipe found"

	detailRecipeNotFound   = "Recipe not found"
	detailUpdateFailed     = "Recipe update failed"
	detailDeleteFailed     = "Recipe deletion failed"
	detailInvalidRecipeID  = "Invalid recipe id"
	detailFetchFailed      = "Failed to fetch recipes"
	detailInvalidPatchBody = "Invalid request body"
)

// RecipeHandler serves the /recipes resource.
//
// The failure contract is deliberately uneven and existing clients rely on it:
// a failed create answers 200 with a "required" hint, get and update of an
// unknown id answer 404, delete of an unknown id answers 200 with a message,
// and failed update or delete commits answer 400.
type RecipeHandler struct {
	recipeService service.IRecipeService
	shaper        *types.Shaper
}

func NewRecipeHandler(recipeService service.IRecipeService, shaper *types.Shaper) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		shaper:        shaper,
	}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("", h.CreateRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Rejected recipe creation: %v", err)
		h.createFailed(c)
		return
	}

	fields, err := req.Validate()
	if err != nil {
		log.Printf("Rejected recipe creation: %v", err)
		h.createFailed(c)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), fields)
	if err != nil {
		log.Printf("Failed to create recipe: %v", err)
		h.createFailed(c)
		return
	}

	c.JSON(http.StatusCreated, h.shaper.Single(msgRecipeCreated, recipe))
}

// createFailed answers with the soft failure body. Store failures share it
// with validation failures so clients only handle one shape.
func (h *RecipeHandler) createFailed(c *gin.Context) {
	c.JSON(http.StatusOK, types.CreateFailureResponse{
		Message:  msgRecipeCreateFailed,
		Required: types.RequiredFieldsHint,
	})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list recipes: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: detailFetchFailed})
		return
	}

	c.JSON(http.StatusOK, h.shaper.List(recipes))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Detail: detailRecipeNotFound})
		return
	case err != nil:
		log.Printf("Failed to get recipe %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: detailFetchFailed})
		return
	}

	c.JSON(http.StatusOK, h.shaper.Single(msgRecipeDetails, recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	// An empty body is an update with no fields
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: detailInvalidPatchBody + ": " + err.Error()})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, req.Patch())
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Detail: detailRecipeNotFound})
		return
	case err != nil:
		log.Printf("Failed to update recipe %d: %v", id, err)
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: detailUpdateFailed})
		return
	}

	c.JSON(http.StatusOK, h.shaper.Single(msgRecipeUpdated, recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	err := h.recipeService.DeleteRecipe(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusOK, types.MessageResponse{Message: msgNoRecipeFound})
		return
	case err != nil:
		log.Printf("Failed to delete recipe %d: %v", id, err)
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: detailDeleteFailed})
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: msgRecipeRemoved})
}

// recipeID parses the :id path parameter, answering 400 only when it is not an
// integer. Integers that cannot be a stored id map to 0, which the store
// reports as not found.
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: detailInvalidRecipeID})
		return 0, false
	}
	if err != nil || id <= 0 || id > model.MaxRecipeID {
		return 0, true
	}
	return uint(id), true
}
