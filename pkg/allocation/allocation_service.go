package allocation

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/entities"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPlanning = "Planning"
	StatusComplete = "Complete"
)

type (
	AllocationService interface {
		ProposeAllocation(ctx context.Context, mealPlanID, ingredientID, userID string) (domain.ProposeAllocationResponse, error)
		FinalizeAllocation(ctx context.Context, req domain.FinalizeAllocationRequest, userID string) ([]domain.AllocationRecordResponse, error)
		UpdateAllocation(ctx context.Context, req domain.FinalizeAllocationRequest, userID string) ([]domain.AllocationRecordResponse, error)
		DeleteAllocation(ctx context.Context, req domain.DeleteAllocationRequest, userID string) error
		ResetAllocations(ctx context.Context, req domain.MealPlanIDsRequest, userID string) error
		AutoDistributeAll(ctx context.Context, req domain.MealPlanIDsRequest, userID string) (domain.AutoDistributeResponse, error)
		FinishCooking(ctx context.Context, req domain.MealPlanIDsRequest, userID string) (domain.FinishCookingResponse, error)
	}

	allocationService struct {
		allocationRepository AllocationRepository
	}
)

func NewAllocationService(allocationRepository AllocationRepository) AllocationService {
	return &allocationService{
		allocationRepository: allocationRepository,
	}
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// ProposeAllocation opens an allocation session for one requirement. When
// records already exist the persisted state is preselected; otherwise a fresh
// first-expiring-first proposal is generated.
func (s *allocationService) ProposeAllocation(ctx context.Context, mealPlanID, ingredientID, userID string) (domain.ProposeAllocationResponse, error) {
	requirement, err := s.getRequirement(ctx, mealPlanID, ingredientID, userID)
	if err != nil {
		return domain.ProposeAllocationResponse{}, err
	}

	lots, err := s.allocationRepository.ListLots(ctx, userID, ingredientID)
	if err != nil {
		return domain.ProposeAllocationResponse{}, storeError(err)
	}

	records, err := s.allocationRepository.ListRecordsForRequirement(ctx, mealPlanID, ingredientID)
	if err != nil {
		return domain.ProposeAllocationResponse{}, storeError(err)
	}

	var selection Selection
	fromRecords := len(records) > 0
	if fromRecords {
		selection = PreselectFromRecords(requirement.QuantityRequired, records, lots)
	} else {
		selection = Allocate(requirement.QuantityRequired, lots)
	}

	response := domain.ProposeAllocationResponse{
		MealPlanID:       mealPlanID,
		IngredientID:     ingredientID,
		IngredientName:   requirement.IngredientName,
		QuantityRequired: requirement.QuantityRequired,
		Unit:             requirement.Unit,
		Lots:             make([]domain.LotOptionResponse, 0, len(selection.Lots)),
		Shortfall:        selection.Shortfall,
		FromRecords:      fromRecords,
	}
	if selection.Shortfall > 0 {
		response.Warning = domain.WarningInsufficientStock
	}

	for _, pick := range selection.Lots {
		response.Lots = append(response.Lots, domain.LotOptionResponse{
			LotID:             pick.LotID.String(),
			QuantityAvailable: pick.QuantityAvailable,
			Unit:              pick.Unit,
			ExpiryDate:        pick.ExpiryDate,
			SelectedQuantity:  pick.SelectedQuantity,
			Preselected:       pick.Preselected,
		})
	}

	return response, nil
}

// FinalizeAllocation persists a confirmed selection as Planning records. The
// whole batch is validated before anything is written: an empty selection or
// a single over-cap entry rejects the request with zero writes.
func (s *allocationService) FinalizeAllocation(ctx context.Context, req domain.FinalizeAllocationRequest, userID string) ([]domain.AllocationRecordResponse, error) {
	_, entries, err := s.validateEntries(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	statusID, err := s.allocationRepository.ResolveStatusID(ctx, StatusPlanning)
	if err != nil {
		return nil, storeError(err)
	}

	mealPlanUUID, _ := uuid.Parse(req.MealPlanID)
	ingredientUUID, _ := uuid.Parse(req.IngredientID)

	records := make([]*entities.AllocationRecord, 0, len(entries))
	for _, entry := range entries {
		lotUUID, err := uuid.Parse(entry.LotID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		records = append(records, &entities.AllocationRecord{
			ID:             uuid.New(),
			InventoryLotID: lotUUID,
			MealPlanID:     mealPlanUUID,
			IngredientID:   ingredientUUID,
			UsedQuantity:   entry.Quantity,
			StatusID:       statusID,
		})
	}

	if err := s.allocationRepository.InsertAllocationRecords(ctx, records); err != nil {
		return nil, storeError(err)
	}

	return recordResponses(records, StatusPlanning), nil
}

// UpdateAllocation overwrites the used quantities of an existing allocation
// by composite key, the edit path for sessions opened over persisted records.
// Per-record writes are independent; a mid-batch store failure leaves the
// earlier updates applied.
func (s *allocationService) UpdateAllocation(ctx context.Context, req domain.FinalizeAllocationRequest, userID string) ([]domain.AllocationRecordResponse, error) {
	_, entries, err := s.validateEntries(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.AllocationRecordResponse, 0, len(entries))
	for _, entry := range entries {
		err := s.allocationRepository.UpdateAllocationRecord(ctx, req.MealPlanID, entry.LotID, req.IngredientID, entry.Quantity)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return responses, domain.ErrAllocationNotFound
			}
			return responses, storeError(err)
		}
		responses = append(responses, domain.AllocationRecordResponse{
			LotID:        entry.LotID,
			MealPlanID:   req.MealPlanID,
			IngredientID: req.IngredientID,
			UsedQuantity: entry.Quantity,
			Status:       StatusPlanning,
		})
	}

	return responses, nil
}

func (s *allocationService) DeleteAllocation(ctx context.Context, req domain.DeleteAllocationRequest, userID string) error {
	if err := s.checkMealPlanOwner(ctx, req.MealPlanID, userID); err != nil {
		return err
	}

	err := s.allocationRepository.DeleteAllocationRecord(ctx, req.MealPlanID, req.LotID, req.IngredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAllocationNotFound
		}
		return storeError(err)
	}
	return nil
}

func (s *allocationService) ResetAllocations(ctx context.Context, req domain.MealPlanIDsRequest, userID string) error {
	for _, mealPlanID := range req.MealPlanIDs {
		if err := s.checkMealPlanOwner(ctx, mealPlanID, userID); err != nil {
			return err
		}
	}

	if err := s.allocationRepository.DeleteAllocationRecords(ctx, req.MealPlanIDs); err != nil {
		return storeError(err)
	}
	return nil
}

// AutoDistributeAll runs preselection-or-FEFO and immediate finalize for
// every requirement of the given meal plans. Requirements are processed
// independently: one failing requirement is reported in its result and the
// batch moves on.
func (s *allocationService) AutoDistributeAll(ctx context.Context, req domain.MealPlanIDsRequest, userID string) (domain.AutoDistributeResponse, error) {
	for _, mealPlanID := range req.MealPlanIDs {
		if err := s.checkMealPlanOwner(ctx, mealPlanID, userID); err != nil {
			return domain.AutoDistributeResponse{}, err
		}
	}

	requirements, err := s.allocationRepository.ListRequirements(ctx, req.MealPlanIDs)
	if err != nil {
		return domain.AutoDistributeResponse{}, storeError(err)
	}

	existing, err := s.allocationRepository.ListAllocationRecords(ctx, req.MealPlanIDs)
	if err != nil {
		return domain.AutoDistributeResponse{}, storeError(err)
	}
	allocated := make(map[string]float64, len(existing))
	for _, record := range existing {
		key := record.MealPlanID.String() + "|" + record.IngredientID.String()
		allocated[key] += record.UsedQuantity
	}

	statusID, err := s.allocationRepository.ResolveStatusID(ctx, StatusPlanning)
	if err != nil {
		return domain.AutoDistributeResponse{}, storeError(err)
	}

	response := domain.AutoDistributeResponse{Results: make([]domain.AutoDistributeResult, 0, len(requirements))}
	for _, requirement := range requirements {
		result := domain.AutoDistributeResult{
			MealPlanID:   requirement.MealPlanID,
			IngredientID: requirement.IngredientID,
		}

		if sum, ok := allocated[requirement.MealPlanID+"|"+requirement.IngredientID]; ok {
			// Existing records win over a fresh proposal.
			result.Allocated = sum
			response.Results = append(response.Results, result)
			continue
		}

		result = s.distributeOne(ctx, requirement, userID, statusID)
		if result.Error != "" {
			response.Failed++
		}
		response.Results = append(response.Results, result)
	}

	return response, nil
}

func (s *allocationService) distributeOne(ctx context.Context, requirement domain.IngredientRequirement, userID string, statusID uuid.UUID) domain.AutoDistributeResult {
	result := domain.AutoDistributeResult{
		MealPlanID:   requirement.MealPlanID,
		IngredientID: requirement.IngredientID,
	}

	lots, err := s.allocationRepository.ListLots(ctx, userID, requirement.IngredientID)
	if err != nil {
		log.Printf("auto distribute: list lots for %s: %v", requirement.IngredientName, err)
		result.Error = domain.ErrStoreUnavailable.Error()
		return result
	}

	selection := Allocate(requirement.QuantityRequired, lots)
	result.Shortfall = selection.Shortfall

	mealPlanUUID, _ := uuid.Parse(requirement.MealPlanID)
	ingredientUUID, _ := uuid.Parse(requirement.IngredientID)

	records := make([]*entities.AllocationRecord, 0, len(selection.Lots))
	for _, pick := range selection.Lots {
		if !pick.Preselected || pick.SelectedQuantity <= 0 {
			continue
		}
		records = append(records, &entities.AllocationRecord{
			ID:             uuid.New(),
			InventoryLotID: pick.LotID,
			MealPlanID:     mealPlanUUID,
			IngredientID:   ingredientUUID,
			UsedQuantity:   pick.SelectedQuantity,
			StatusID:       statusID,
		})
	}

	if len(records) == 0 {
		result.Error = domain.ErrInsufficientStock.Error()
		return result
	}

	if err := s.allocationRepository.InsertAllocationRecords(ctx, records); err != nil {
		log.Printf("auto distribute: insert records for %s: %v", requirement.IngredientName, err)
		result.Error = domain.ErrStoreUnavailable.Error()
		return result
	}

	result.Allocated = selection.CappedTotal()
	return result
}

// FinishCooking moves every Planning record of the given meal plans to
// Complete and deducts the used quantities from their lots. Lot updates are
// independent and not rolled back on failure: semantics are at-least-once,
// and a partial failure is reported alongside the applied deductions.
func (s *allocationService) FinishCooking(ctx context.Context, req domain.MealPlanIDsRequest, userID string) (domain.FinishCookingResponse, error) {
	for _, mealPlanID := range req.MealPlanIDs {
		if err := s.checkMealPlanOwner(ctx, mealPlanID, userID); err != nil {
			return domain.FinishCookingResponse{}, err
		}
	}

	planningID, err := s.allocationRepository.ResolveStatusID(ctx, StatusPlanning)
	if err != nil {
		return domain.FinishCookingResponse{}, storeError(err)
	}
	completeID, err := s.allocationRepository.ResolveStatusID(ctx, StatusComplete)
	if err != nil {
		return domain.FinishCookingResponse{}, storeError(err)
	}

	records, err := s.allocationRepository.ListAllocationRecords(ctx, req.MealPlanIDs)
	if err != nil {
		return domain.FinishCookingResponse{}, storeError(err)
	}

	usedPerLot := make(map[string]float64)
	pending := 0
	for _, record := range records {
		if record.StatusID != planningID {
			continue
		}
		pending++
		usedPerLot[record.InventoryLotID.String()] += record.UsedQuantity
	}

	response := domain.FinishCookingResponse{RecordsCompleted: pending}
	if pending == 0 {
		return response, nil
	}

	if err := s.allocationRepository.MarkRecordsComplete(ctx, req.MealPlanIDs, planningID, completeID); err != nil {
		return domain.FinishCookingResponse{}, storeError(err)
	}

	for lotID, used := range usedPerLot {
		lot, err := s.allocationRepository.GetLotByID(ctx, lotID)
		if err != nil {
			log.Printf("finish cooking: fetch lot %s: %v", lotID, err)
			response.FailedLots = append(response.FailedLots, lotID)
			continue
		}

		newQuantity := lot.QuantityAvailable - used
		if newQuantity < 0 {
			newQuantity = 0
		}

		if err := s.allocationRepository.UpdateLotQuantity(ctx, lotID, newQuantity); err != nil {
			log.Printf("finish cooking: deduct lot %s: %v", lotID, err)
			response.FailedLots = append(response.FailedLots, lotID)
			continue
		}
		response.LotsDeducted++
	}

	if len(response.FailedLots) > 0 {
		return response, fmt.Errorf("%w: %d lot updates failed", domain.ErrStoreUnavailable, len(response.FailedLots))
	}
	return response, nil
}

func (s *allocationService) getRequirement(ctx context.Context, mealPlanID, ingredientID, userID string) (domain.IngredientRequirement, error) {
	if err := s.checkMealPlanOwner(ctx, mealPlanID, userID); err != nil {
		return domain.IngredientRequirement{}, err
	}

	requirement, err := s.allocationRepository.GetRequirement(ctx, mealPlanID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientRequirement{}, domain.ErrRequirementNotFound
		}
		return domain.IngredientRequirement{}, storeError(err)
	}
	return requirement, nil
}

func (s *allocationService) checkMealPlanOwner(ctx context.Context, mealPlanID, userID string) error {
	mealPlan, err := s.allocationRepository.GetMealPlanByID(ctx, mealPlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealPlanNotFound
		}
		return storeError(err)
	}
	if mealPlan.UserID.String() != userID {
		return domain.ErrUnauthorizedMealAccess
	}
	return nil
}

// validateEntries runs the shared finalize/update validation: drop entries
// without a positive quantity, then check every remaining entry against the
// requirement cap and its lot's availability. No writes happen here.
func (s *allocationService) validateEntries(ctx context.Context, req domain.FinalizeAllocationRequest, userID string) (domain.IngredientRequirement, []domain.AllocationEntryRequest, error) {
	requirement, err := s.getRequirement(ctx, req.MealPlanID, req.IngredientID, userID)
	if err != nil {
		return domain.IngredientRequirement{}, nil, err
	}

	entries := make([]domain.AllocationEntryRequest, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if entry.Quantity > 0 {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return domain.IngredientRequirement{}, nil, domain.ErrEmptySelection
	}

	for _, entry := range entries {
		if entry.Quantity > requirement.QuantityRequired {
			return domain.IngredientRequirement{}, nil, domain.ErrCapExceeded
		}

		lot, err := s.allocationRepository.GetLotByID(ctx, entry.LotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.IngredientRequirement{}, nil, domain.ErrLotNotFound
			}
			return domain.IngredientRequirement{}, nil, storeError(err)
		}
		if lot.UserID.String() != userID {
			return domain.IngredientRequirement{}, nil, domain.ErrUnauthorizedAccess
		}
		if lot.IngredientID.String() != req.IngredientID {
			return domain.IngredientRequirement{}, nil, domain.ErrLotNotFound
		}
		if entry.Quantity > lot.QuantityAvailable {
			return domain.IngredientRequirement{}, nil, domain.ErrQuantityExceedsLot
		}
	}

	return requirement, entries, nil
}

func recordResponses(records []*entities.AllocationRecord, status string) []domain.AllocationRecordResponse {
	responses := make([]domain.AllocationRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, domain.AllocationRecordResponse{
			LotID:        record.InventoryLotID.String(),
			MealPlanID:   record.MealPlanID.String(),
			IngredientID: record.IngredientID.String(),
			UsedQuantity: record.UsedQuantity,
			Status:       status,
			UpdatedAt:    record.UpdatedAt,
		})
	}
	return responses
}
