package allocation

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AllocationRepository interface {
		ListLots(ctx context.Context, userID, ingredientID string) ([]entities.InventoryLot, error)
		GetLotByID(ctx context.Context, id string) (*entities.InventoryLot, error)
		UpdateLotQuantity(ctx context.Context, lotID string, newQuantity float64) error

		GetRequirement(ctx context.Context, mealPlanID, ingredientID string) (domain.IngredientRequirement, error)
		ListRequirements(ctx context.Context, mealPlanIDs []string) ([]domain.IngredientRequirement, error)
		GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error)

		ListAllocationRecords(ctx context.Context, mealPlanIDs []string) ([]entities.AllocationRecord, error)
		ListRecordsForRequirement(ctx context.Context, mealPlanID, ingredientID string) ([]entities.AllocationRecord, error)
		InsertAllocationRecords(ctx context.Context, records []*entities.AllocationRecord) error
		UpdateAllocationRecord(ctx context.Context, mealPlanID, lotID, ingredientID string, usedQuantity float64) error
		DeleteAllocationRecord(ctx context.Context, mealPlanID, lotID, ingredientID string) error
		DeleteAllocationRecords(ctx context.Context, mealPlanIDs []string) error

		ResolveStatusID(ctx context.Context, name string) (uuid.UUID, error)
		MarkRecordsComplete(ctx context.Context, mealPlanIDs []string, fromStatusID, toStatusID uuid.UUID) error
	}

	allocationRepository struct {
		db *gorm.DB
	}
)

func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) ListLots(ctx context.Context, userID, ingredientID string) ([]entities.InventoryLot, error) {
	var lots []entities.InventoryLot

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id = ? AND quantity_available > 0 AND status IN ?",
			userID, ingredientID, []string{"Safe", "Warning"}).
		Order("expiry_date asc NULLS LAST").
		Find(&lots).Error; err != nil {
		return nil, err
	}

	return lots, nil
}

func (r *allocationRepository) GetLotByID(ctx context.Context, id string) (*entities.InventoryLot, error) {
	var lot entities.InventoryLot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lot).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *allocationRepository) UpdateLotQuantity(ctx context.Context, lotID string, newQuantity float64) error {
	result := r.db.WithContext(ctx).Model(&entities.InventoryLot{}).
		Where("id = ?", lotID).
		Updates(map[string]interface{}{
			"quantity_available": newQuantity,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *allocationRepository) GetRequirement(ctx context.Context, mealPlanID, ingredientID string) (domain.IngredientRequirement, error) {
	var requirement domain.IngredientRequirement

	err := r.db.WithContext(ctx).
		Table("meal_plans").
		Select(`meal_plans.id AS meal_plan_id,
			recipes.id AS recipe_id,
			recipes.title AS recipe_title,
			recipe_ingredients.ingredient_id AS ingredient_id,
			ingredients.name AS ingredient_name,
			recipe_ingredients.quantity AS quantity_required,
			recipe_ingredients.unit AS unit`).
		Joins("JOIN recipes ON recipes.id = meal_plans.recipe_id").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("meal_plans.id = ? AND recipe_ingredients.ingredient_id = ?", mealPlanID, ingredientID).
		Take(&requirement).Error
	if err != nil {
		return domain.IngredientRequirement{}, err
	}

	return requirement, nil
}

func (r *allocationRepository) ListRequirements(ctx context.Context, mealPlanIDs []string) ([]domain.IngredientRequirement, error) {
	var requirements []domain.IngredientRequirement

	err := r.db.WithContext(ctx).
		Table("meal_plans").
		Select(`meal_plans.id AS meal_plan_id,
			recipes.id AS recipe_id,
			recipes.title AS recipe_title,
			recipe_ingredients.ingredient_id AS ingredient_id,
			ingredients.name AS ingredient_name,
			recipe_ingredients.quantity AS quantity_required,
			recipe_ingredients.unit AS unit`).
		Joins("JOIN recipes ON recipes.id = meal_plans.recipe_id").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("meal_plans.id IN ?", mealPlanIDs).
		Order("ingredients.name asc").
		Scan(&requirements).Error
	if err != nil {
		return nil, err
	}

	return requirements, nil
}

func (r *allocationRepository) GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error) {
	var mealPlan entities.MealPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mealPlan).Error; err != nil {
		return nil, err
	}
	return &mealPlan, nil
}

func (r *allocationRepository) ListAllocationRecords(ctx context.Context, mealPlanIDs []string) ([]entities.AllocationRecord, error) {
	var records []entities.AllocationRecord

	if err := r.db.WithContext(ctx).
		Where("meal_plan_id IN ?", mealPlanIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *allocationRepository) ListRecordsForRequirement(ctx context.Context, mealPlanID, ingredientID string) ([]entities.AllocationRecord, error) {
	var records []entities.AllocationRecord

	if err := r.db.WithContext(ctx).
		Where("meal_plan_id = ? AND ingredient_id = ?", mealPlanID, ingredientID).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *allocationRepository) InsertAllocationRecords(ctx context.Context, records []*entities.AllocationRecord) error {
	return r.db.WithContext(ctx).Create(records).Error
}

func (r *allocationRepository) UpdateAllocationRecord(ctx context.Context, mealPlanID, lotID, ingredientID string, usedQuantity float64) error {
	result := r.db.WithContext(ctx).Model(&entities.AllocationRecord{}).
		Where("meal_plan_id = ? AND inventory_lot_id = ? AND ingredient_id = ?", mealPlanID, lotID, ingredientID).
		Updates(map[string]interface{}{
			"used_quantity": usedQuantity,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *allocationRepository) DeleteAllocationRecord(ctx context.Context, mealPlanID, lotID, ingredientID string) error {
	result := r.db.WithContext(ctx).
		Where("meal_plan_id = ? AND inventory_lot_id = ? AND ingredient_id = ?", mealPlanID, lotID, ingredientID).
		Delete(&entities.AllocationRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *allocationRepository) DeleteAllocationRecords(ctx context.Context, mealPlanIDs []string) error {
	return r.db.WithContext(ctx).
		Where("meal_plan_id IN ?", mealPlanIDs).
		Delete(&entities.AllocationRecord{}).Error
}

func (r *allocationRepository) ResolveStatusID(ctx context.Context, name string) (uuid.UUID, error) {
	var status entities.AllocationStatus
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		return uuid.Nil, err
	}
	return status.ID, nil
}

func (r *allocationRepository) MarkRecordsComplete(ctx context.Context, mealPlanIDs []string, fromStatusID, toStatusID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entities.AllocationRecord{}).
		Where("meal_plan_id IN ? AND status_id = ?", mealPlanIDs, fromStatusID).
		Updates(map[string]interface{}{
			"status_id":  toStatusID,
			"updated_at": time.Now(),
		}).Error
}
