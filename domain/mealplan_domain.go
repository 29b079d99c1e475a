package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateMealPlan = "meal plan created successfully"
	MessageSuccessGetMealPlans   = "meal plans retrieved successfully"
	MessageSuccessDeleteMealPlan = "meal plan deleted successfully"

	MessageFailedCreateMealPlan = "failed to create meal plan"
	MessageFailedGetMealPlans   = "failed to retrieve meal plans"
	MessageFailedDeleteMealPlan = "failed to delete meal plan"

	ErrMealPlanNotFound       = errors.New("meal plan not found")
	ErrInvalidMealType        = errors.New("invalid meal type")
	ErrInvalidPlannedDate     = errors.New("invalid planned date")
	ErrUnauthorizedMealAccess = errors.New("unauthorized access to meal plan")
)

type (
	CreateMealPlanRequest struct {
		RecipeID    string `json:"recipe_id" validate:"required,uuid"`
		MealType    string `json:"meal_type" validate:"required"`
		PlannedDate string `json:"planned_date" validate:"required"`
	}

	MealPlanResponse struct {
		ID          string    `json:"id"`
		RecipeID    string    `json:"recipe_id"`
		RecipeTitle string    `json:"recipe_title"`
		MealType    string    `json:"meal_type"`
		PlannedDate time.Time `json:"planned_date"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// IngredientRequirement is the quantity one planned recipe needs of an
	// ingredient. Re-derived from the recipe definition on every load, never
	// stored.
	IngredientRequirement struct {
		MealPlanID       string  `json:"meal_plan_id"`
		RecipeID         string  `json:"recipe_id"`
		RecipeTitle      string  `json:"recipe_title"`
		IngredientID     string  `json:"ingredient_id"`
		IngredientName   string  `json:"ingredient_name"`
		QuantityRequired float64 `json:"quantity_required"`
		Unit             string  `json:"unit"`
	}

	RequirementProgress struct {
		IngredientRequirement
		QuantityAllocated float64 `json:"quantity_allocated"`
		Complete          bool    `json:"complete"`
	}

	MealPlanDayResponse struct {
		PlannedDate  time.Time             `json:"planned_date"`
		MealType     string                `json:"meal_type"`
		MealPlans    []MealPlanResponse    `json:"meal_plans"`
		Requirements []RequirementProgress `json:"requirements"`
	}
)
