package recipe

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/entities"
	"Pantry-Planner/pkg/inventory"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.SaveRecipeRequest, userID string) error
		DeleteRecipe(ctx context.Context, id string, userID string) error
		GetRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, id string, userID string) (domain.RecipeDetailResponse, error)
	}

	recipeService struct {
		recipeRepository    RecipeRepository
		inventoryRepository inventory.InventoryRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository, inventoryRepository inventory.InventoryRepository) RecipeService {
	return &recipeService{
		recipeRepository:    recipeRepository,
		inventoryRepository: inventoryRepository,
	}
}

func (s *recipeService) SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	if len(req.Ingredients) == 0 {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeWithoutIngredients
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		ID:              uuid.New(),
		UserID:          userUUID,
		Title:           req.Title,
		Description:     req.Description,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Instructions:    req.Instructions,
	}

	lines, err := s.buildIngredientLines(ctx, recipe.ID, req.Ingredients, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	recipe.Ingredients = lines

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.SaveRecipeRequest, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Title != "" {
		recipe.Title = req.Title
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if req.PrepTimeMinutes > 0 {
		recipe.PrepTimeMinutes = req.PrepTimeMinutes
	}
	if req.CookTimeMinutes > 0 {
		recipe.CookTimeMinutes = req.CookTimeMinutes
	}
	if req.Servings > 0 {
		recipe.Servings = req.Servings
	}
	if req.Instructions != "" {
		recipe.Instructions = req.Instructions
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return err
	}

	if len(req.Ingredients) > 0 {
		lines, err := s.buildIngredientLines(ctx, recipe.ID, req.Ingredients, userID)
		if err != nil {
			return err
		}
		return s.recipeRepository.ReplaceIngredients(ctx, id, lines)
	}

	return nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedRecipe(ctx, id, userID); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, id)
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.RecipeResponse
	for _, recipe := range recipes {
		response = append(response, recipeResponse(recipe))
	}

	return response, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id string, userID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	detail := domain.RecipeDetailResponse{
		RecipeResponse: recipeResponse(recipe),
		Instructions:   recipe.Instructions,
		Ingredients:    make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients)),
	}

	for _, line := range recipe.Ingredients {
		stock, err := s.recipeRepository.GetAvailableStock(ctx, userID, line.IngredientID.String())
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}

		ingredientResponse := domain.RecipeIngredientResponse{
			IngredientID:   line.IngredientID.String(),
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			IsAvailable:    stock >= line.Quantity,
			StockAvailable: stock,
		}
		if line.Ingredient != nil {
			ingredientResponse.IngredientName = line.Ingredient.Name
		}
		detail.Ingredients = append(detail.Ingredients, ingredientResponse)
	}

	return detail, nil
}

func (s *recipeService) getOwnedRecipe(ctx context.Context, id, userID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) buildIngredientLines(ctx context.Context, recipeID uuid.UUID, requests []domain.RecipeIngredientRequest, userID string) ([]*entities.RecipeIngredient, error) {
	lines := make([]*entities.RecipeIngredient, 0, len(requests))
	for _, request := range requests {
		quantity, err := domain.ParseQuantity(request.Quantity)
		if err != nil {
			return nil, err
		}

		ingredient, err := s.inventoryRepository.GetOrCreateIngredient(ctx, userID, request.IngredientName, quantity.Unit)
		if err != nil {
			return nil, err
		}

		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: ingredient.ID,
			Quantity:     quantity.Value,
			Unit:         quantity.Unit,
		})
	}
	return lines, nil
}

func recipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		CreatedAt:       recipe.CreatedAt,
	}
}
