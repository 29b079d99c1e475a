package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrRecipeWithoutIngredients = errors.New("recipe needs at least one ingredient")
)

type (
	RecipeIngredientRequest struct {
		IngredientName string `json:"ingredient_name" validate:"required"`
		Quantity       string `json:"quantity" validate:"required"`
	}

	SaveRecipeRequest struct {
		Title           string                    `json:"title" validate:"required"`
		Description     string                    `json:"description" validate:"omitempty"`
		PrepTimeMinutes int                       `json:"prep_time_minutes" validate:"omitempty,min=0"`
		CookTimeMinutes int                       `json:"cook_time_minutes" validate:"omitempty,min=0"`
		Servings        int                       `json:"servings" validate:"omitempty,min=1"`
		Instructions    string                    `json:"instructions" validate:"omitempty"`
		Ingredients     []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	RecipeResponse struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ImageURL        string    `json:"image_url,omitempty"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		Servings        int       `json:"servings"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeIngredientResponse struct {
		IngredientID   string  `json:"ingredient_id"`
		IngredientName string  `json:"ingredient_name"`
		Quantity       float64 `json:"quantity"`
		Unit           string  `json:"unit"`
		IsAvailable    bool    `json:"is_available"`
		StockAvailable float64 `json:"stock_available"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Instructions string                     `json:"instructions"`
		Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	}
)
