package mealplan

import (
	"Pantry-Planner/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	MealPlanRepository interface {
		CreateMealPlan(ctx context.Context, mealPlan *entities.MealPlan) error
		GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error)
		GetMealPlansForDay(ctx context.Context, userID string, date time.Time, mealType string) ([]*entities.MealPlan, error)
		DeleteMealPlan(ctx context.Context, id string) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) CreateMealPlan(ctx context.Context, mealPlan *entities.MealPlan) error {
	return r.db.WithContext(ctx).Create(mealPlan).Error
}

func (r *mealPlanRepository) GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error) {
	var mealPlan entities.MealPlan
	if err := r.db.WithContext(ctx).Preload("Recipe").Where("id = ?", id).First(&mealPlan).Error; err != nil {
		return nil, err
	}
	return &mealPlan, nil
}

func (r *mealPlanRepository) GetMealPlansForDay(ctx context.Context, userID string, date time.Time, mealType string) ([]*entities.MealPlan, error) {
	var mealPlans []*entities.MealPlan

	query := r.db.WithContext(ctx).Preload("Recipe").
		Where("user_id = ? AND planned_date = ?", userID, date)
	if mealType != "" && mealType != "all" {
		query = query.Where("meal_type = ?", mealType)
	}

	if err := query.Order("created_at asc").Find(&mealPlans).Error; err != nil {
		return nil, err
	}

	return mealPlans, nil
}

func (r *mealPlanRepository) DeleteMealPlan(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", id).Delete(&entities.AllocationRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.MealPlan{}).Error
	})
}
