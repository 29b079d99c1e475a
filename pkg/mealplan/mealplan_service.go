package mealplan

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/entities"
	"Pantry-Planner/pkg/allocation"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var mealTypes = map[string]bool{
	"Breakfast": true,
	"Lunch":     true,
	"Dinner":    true,
	"Snack":     true,
}

type (
	MealPlanService interface {
		CreateMealPlan(ctx context.Context, req domain.CreateMealPlanRequest, userID string) (domain.MealPlanResponse, error)
		GetMealPlanDay(ctx context.Context, userID, date, mealType string) (domain.MealPlanDayResponse, error)
		DeleteMealPlan(ctx context.Context, id string, userID string) error
	}

	mealPlanService struct {
		mealPlanRepository   MealPlanRepository
		allocationRepository allocation.AllocationRepository
	}
)

func NewMealPlanService(mealPlanRepository MealPlanRepository, allocationRepository allocation.AllocationRepository) MealPlanService {
	return &mealPlanService{
		mealPlanRepository:   mealPlanRepository,
		allocationRepository: allocationRepository,
	}
}

func (s *mealPlanService) CreateMealPlan(ctx context.Context, req domain.CreateMealPlanRequest, userID string) (domain.MealPlanResponse, error) {
	if !mealTypes[req.MealType] {
		return domain.MealPlanResponse{}, domain.ErrInvalidMealType
	}

	plannedDate, err := time.Parse("2006-01-02", req.PlannedDate)
	if err != nil {
		return domain.MealPlanResponse{}, domain.ErrInvalidPlannedDate
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MealPlanResponse{}, domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return domain.MealPlanResponse{}, domain.ErrParseUUID
	}

	mealPlan := &entities.MealPlan{
		ID:          uuid.New(),
		UserID:      userUUID,
		RecipeID:    recipeUUID,
		MealType:    req.MealType,
		PlannedDate: plannedDate,
	}

	if err := s.mealPlanRepository.CreateMealPlan(ctx, mealPlan); err != nil {
		return domain.MealPlanResponse{}, err
	}

	created, err := s.mealPlanRepository.GetMealPlanByID(ctx, mealPlan.ID.String())
	if err != nil {
		return domain.MealPlanResponse{}, err
	}

	return mealPlanResponse(created), nil
}

// GetMealPlanDay is the requirement source for an allocation session: the
// plans of one date/meal-type slot plus every ingredient requirement they
// derive, each annotated with its current allocation progress.
func (s *mealPlanService) GetMealPlanDay(ctx context.Context, userID, date, mealType string) (domain.MealPlanDayResponse, error) {
	plannedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.MealPlanDayResponse{}, domain.ErrInvalidPlannedDate
	}

	mealPlans, err := s.mealPlanRepository.GetMealPlansForDay(ctx, userID, plannedDate, mealType)
	if err != nil {
		return domain.MealPlanDayResponse{}, err
	}

	response := domain.MealPlanDayResponse{
		PlannedDate:  plannedDate,
		MealType:     mealType,
		MealPlans:    make([]domain.MealPlanResponse, 0, len(mealPlans)),
		Requirements: []domain.RequirementProgress{},
	}

	if len(mealPlans) == 0 {
		return response, nil
	}

	mealPlanIDs := make([]string, 0, len(mealPlans))
	for _, mealPlan := range mealPlans {
		response.MealPlans = append(response.MealPlans, mealPlanResponse(mealPlan))
		mealPlanIDs = append(mealPlanIDs, mealPlan.ID.String())
	}

	requirements, err := s.allocationRepository.ListRequirements(ctx, mealPlanIDs)
	if err != nil {
		return domain.MealPlanDayResponse{}, err
	}

	records, err := s.allocationRepository.ListAllocationRecords(ctx, mealPlanIDs)
	if err != nil {
		return domain.MealPlanDayResponse{}, err
	}
	allocated := make(map[string]float64, len(records))
	for _, record := range records {
		allocated[record.MealPlanID.String()+"|"+record.IngredientID.String()] += record.UsedQuantity
	}

	for _, requirement := range requirements {
		sum := allocated[requirement.MealPlanID+"|"+requirement.IngredientID]
		response.Requirements = append(response.Requirements, domain.RequirementProgress{
			IngredientRequirement: requirement,
			QuantityAllocated:     sum,
			Complete:              sum >= requirement.QuantityRequired,
		})
	}

	return response, nil
}

func (s *mealPlanService) DeleteMealPlan(ctx context.Context, id string, userID string) error {
	mealPlan, err := s.mealPlanRepository.GetMealPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealPlanNotFound
		}
		return err
	}

	if mealPlan.UserID.String() != userID {
		return domain.ErrUnauthorizedMealAccess
	}

	return s.mealPlanRepository.DeleteMealPlan(ctx, id)
}

func mealPlanResponse(mealPlan *entities.MealPlan) domain.MealPlanResponse {
	response := domain.MealPlanResponse{
		ID:          mealPlan.ID.String(),
		RecipeID:    mealPlan.RecipeID.String(),
		MealType:    mealPlan.MealType,
		PlannedDate: mealPlan.PlannedDate,
		CreatedAt:   mealPlan.CreatedAt,
	}
	if mealPlan.Recipe != nil {
		response.RecipeTitle = mealPlan.Recipe.Title
	}
	return response
}
