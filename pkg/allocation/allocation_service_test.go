package allocation

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/entities"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeRepository is an in-memory AllocationRepository for service tests.
type fakeRepository struct {
	lots         map[string]*entities.InventoryLot
	mealPlans    map[string]*entities.MealPlan
	requirements map[string]domain.IngredientRequirement
	reqOrder     []string
	records      []*entities.AllocationRecord
	statuses     map[string]uuid.UUID
	failLots     map[string]bool
	inserted     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		lots:         map[string]*entities.InventoryLot{},
		mealPlans:    map[string]*entities.MealPlan{},
		requirements: map[string]domain.IngredientRequirement{},
		statuses: map[string]uuid.UUID{
			StatusPlanning: uuid.New(),
			StatusComplete: uuid.New(),
		},
		failLots: map[string]bool{},
	}
}

func reqKey(mealPlanID, ingredientID string) string {
	return mealPlanID + "|" + ingredientID
}

func (f *fakeRepository) addMealPlan(userID uuid.UUID) *entities.MealPlan {
	plan := &entities.MealPlan{ID: uuid.New(), UserID: userID, RecipeID: uuid.New()}
	f.mealPlans[plan.ID.String()] = plan
	return plan
}

func (f *fakeRepository) addRequirement(mealPlanID uuid.UUID, required float64) domain.IngredientRequirement {
	requirement := domain.IngredientRequirement{
		MealPlanID:       mealPlanID.String(),
		IngredientID:     uuid.New().String(),
		IngredientName:   "flour",
		QuantityRequired: required,
		Unit:             "g",
	}
	key := reqKey(requirement.MealPlanID, requirement.IngredientID)
	f.requirements[key] = requirement
	f.reqOrder = append(f.reqOrder, key)
	return requirement
}

func (f *fakeRepository) addLot(userID uuid.UUID, ingredientID string, quantity float64) *entities.InventoryLot {
	ingredientUUID, _ := uuid.Parse(ingredientID)
	lot := &entities.InventoryLot{
		ID:                uuid.New(),
		UserID:            userID,
		IngredientID:      ingredientUUID,
		QuantityAvailable: quantity,
		Unit:              "g",
		Status:            "Safe",
	}
	f.lots[lot.ID.String()] = lot
	return lot
}

func (f *fakeRepository) ListLots(_ context.Context, userID, ingredientID string) ([]entities.InventoryLot, error) {
	var lots []entities.InventoryLot
	for _, lot := range f.lots {
		if lot.UserID.String() != userID || lot.IngredientID.String() != ingredientID {
			continue
		}
		if lot.QuantityAvailable <= 0 || (lot.Status != "Safe" && lot.Status != "Warning") {
			continue
		}
		lots = append(lots, *lot)
	}
	return lots, nil
}

func (f *fakeRepository) GetLotByID(_ context.Context, id string) (*entities.InventoryLot, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lot, nil
}

func (f *fakeRepository) UpdateLotQuantity(_ context.Context, lotID string, newQuantity float64) error {
	if f.failLots[lotID] {
		return errors.New("write refused")
	}
	lot, ok := f.lots[lotID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lot.QuantityAvailable = newQuantity
	return nil
}

func (f *fakeRepository) GetRequirement(_ context.Context, mealPlanID, ingredientID string) (domain.IngredientRequirement, error) {
	requirement, ok := f.requirements[reqKey(mealPlanID, ingredientID)]
	if !ok {
		return domain.IngredientRequirement{}, gorm.ErrRecordNotFound
	}
	return requirement, nil
}

func (f *fakeRepository) ListRequirements(_ context.Context, mealPlanIDs []string) ([]domain.IngredientRequirement, error) {
	wanted := map[string]bool{}
	for _, id := range mealPlanIDs {
		wanted[id] = true
	}
	var requirements []domain.IngredientRequirement
	for _, key := range f.reqOrder {
		requirement := f.requirements[key]
		if wanted[requirement.MealPlanID] {
			requirements = append(requirements, requirement)
		}
	}
	return requirements, nil
}

func (f *fakeRepository) GetMealPlanByID(_ context.Context, id string) (*entities.MealPlan, error) {
	plan, ok := f.mealPlans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (f *fakeRepository) ListAllocationRecords(_ context.Context, mealPlanIDs []string) ([]entities.AllocationRecord, error) {
	wanted := map[string]bool{}
	for _, id := range mealPlanIDs {
		wanted[id] = true
	}
	var records []entities.AllocationRecord
	for _, record := range f.records {
		if wanted[record.MealPlanID.String()] {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (f *fakeRepository) ListRecordsForRequirement(_ context.Context, mealPlanID, ingredientID string) ([]entities.AllocationRecord, error) {
	var records []entities.AllocationRecord
	for _, record := range f.records {
		if record.MealPlanID.String() == mealPlanID && record.IngredientID.String() == ingredientID {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (f *fakeRepository) InsertAllocationRecords(_ context.Context, records []*entities.AllocationRecord) error {
	f.records = append(f.records, records...)
	f.inserted += len(records)
	return nil
}

func (f *fakeRepository) UpdateAllocationRecord(_ context.Context, mealPlanID, lotID, ingredientID string, usedQuantity float64) error {
	for _, record := range f.records {
		if record.MealPlanID.String() == mealPlanID &&
			record.InventoryLotID.String() == lotID &&
			record.IngredientID.String() == ingredientID {
			record.UsedQuantity = usedQuantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepository) DeleteAllocationRecord(_ context.Context, mealPlanID, lotID, ingredientID string) error {
	for i, record := range f.records {
		if record.MealPlanID.String() == mealPlanID &&
			record.InventoryLotID.String() == lotID &&
			record.IngredientID.String() == ingredientID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepository) DeleteAllocationRecords(_ context.Context, mealPlanIDs []string) error {
	wanted := map[string]bool{}
	for _, id := range mealPlanIDs {
		wanted[id] = true
	}
	kept := f.records[:0]
	for _, record := range f.records {
		if !wanted[record.MealPlanID.String()] {
			kept = append(kept, record)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeRepository) ResolveStatusID(_ context.Context, name string) (uuid.UUID, error) {
	id, ok := f.statuses[name]
	if !ok {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return id, nil
}

func (f *fakeRepository) MarkRecordsComplete(_ context.Context, mealPlanIDs []string, fromStatusID, toStatusID uuid.UUID) error {
	wanted := map[string]bool{}
	for _, id := range mealPlanIDs {
		wanted[id] = true
	}
	for _, record := range f.records {
		if wanted[record.MealPlanID.String()] && record.StatusID == fromStatusID {
			record.StatusID = toStatusID
		}
	}
	return nil
}

func TestProposeAllocationFreshProposal(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 5)
	repo.addLot(userID, requirement.IngredientID, 3)

	service := NewAllocationService(repo)
	res, err := service.ProposeAllocation(context.Background(), requirement.MealPlanID, requirement.IngredientID, userID.String())
	if err != nil {
		t.Fatalf("ProposeAllocation: %v", err)
	}

	if res.FromRecords {
		t.Errorf("FromRecords = true, want fresh proposal")
	}
	if res.Shortfall != 2 || res.Warning == "" {
		t.Errorf("Shortfall = %v warning %q, want 2 with warning", res.Shortfall, res.Warning)
	}
	if len(res.Lots) != 1 || res.Lots[0].SelectedQuantity != 3 {
		t.Errorf("lots = %+v, want the single lot fully drained", res.Lots)
	}
}

func TestProposeAllocationPrefersPersistedRecords(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 5)
	lot := repo.addLot(userID, requirement.IngredientID, 10)

	ingredientUUID, _ := uuid.Parse(requirement.IngredientID)
	repo.records = append(repo.records, &entities.AllocationRecord{
		ID:             uuid.New(),
		InventoryLotID: lot.ID,
		MealPlanID:     plan.ID,
		IngredientID:   ingredientUUID,
		UsedQuantity:   2,
		StatusID:       repo.statuses[StatusPlanning],
	})

	service := NewAllocationService(repo)
	res, err := service.ProposeAllocation(context.Background(), requirement.MealPlanID, requirement.IngredientID, userID.String())
	if err != nil {
		t.Fatalf("ProposeAllocation: %v", err)
	}

	if !res.FromRecords {
		t.Errorf("FromRecords = false, want persisted state")
	}
	if res.Lots[0].SelectedQuantity != 2 {
		t.Errorf("selected = %v, want recorded 2 over FEFO's 5", res.Lots[0].SelectedQuantity)
	}
}

func TestProposeAllocationUnauthorized(t *testing.T) {
	repo := newFakeRepository()
	plan := repo.addMealPlan(uuid.New())
	requirement := repo.addRequirement(plan.ID, 5)

	service := NewAllocationService(repo)
	_, err := service.ProposeAllocation(context.Background(), requirement.MealPlanID, requirement.IngredientID, uuid.New().String())
	if !errors.Is(err, domain.ErrUnauthorizedMealAccess) {
		t.Errorf("error = %v, want ErrUnauthorizedMealAccess", err)
	}
}

func TestFinalizeEmptySelectionWritesNothing(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 5)
	lot := repo.addLot(userID, requirement.IngredientID, 10)

	service := NewAllocationService(repo)
	_, err := service.FinalizeAllocation(context.Background(), domain.FinalizeAllocationRequest{
		MealPlanID:   requirement.MealPlanID,
		IngredientID: requirement.IngredientID,
		Entries: []domain.AllocationEntryRequest{
			{LotID: lot.ID.String(), Quantity: 0},
		},
	}, userID.String())

	if !errors.Is(err, domain.ErrEmptySelection) {
		t.Fatalf("error = %v, want ErrEmptySelection", err)
	}
	if repo.inserted != 0 {
		t.Errorf("inserted %d records, want zero writes", repo.inserted)
	}
}

func TestFinalizeRejectsOverCapEntry(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 5)
	good := repo.addLot(userID, requirement.IngredientID, 10)
	bad := repo.addLot(userID, requirement.IngredientID, 10)

	service := NewAllocationService(repo)
	_, err := service.FinalizeAllocation(context.Background(), domain.FinalizeAllocationRequest{
		MealPlanID:   requirement.MealPlanID,
		IngredientID: requirement.IngredientID,
		Entries: []domain.AllocationEntryRequest{
			{LotID: good.ID.String(), Quantity: 3},
			{LotID: bad.ID.String(), Quantity: 6},
		},
	}, userID.String())

	if !errors.Is(err, domain.ErrCapExceeded) {
		t.Fatalf("error = %v, want ErrCapExceeded", err)
	}
	if repo.inserted != 0 {
		t.Errorf("a rejected batch must write nothing, inserted %d", repo.inserted)
	}
}

func TestFinalizeRejectsLotOverdraw(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 20)
	lot := repo.addLot(userID, requirement.IngredientID, 4)

	service := NewAllocationService(repo)
	_, err := service.FinalizeAllocation(context.Background(), domain.FinalizeAllocationRequest{
		MealPlanID:   requirement.MealPlanID,
		IngredientID: requirement.IngredientID,
		Entries: []domain.AllocationEntryRequest{
			{LotID: lot.ID.String(), Quantity: 6},
		},
	}, userID.String())

	if !errors.Is(err, domain.ErrQuantityExceedsLot) {
		t.Errorf("error = %v, want ErrQuantityExceedsLot", err)
	}
}

func TestFinalizePersistsPlanningRecords(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 5)
	first := repo.addLot(userID, requirement.IngredientID, 3)
	second := repo.addLot(userID, requirement.IngredientID, 10)

	service := NewAllocationService(repo)
	res, err := service.FinalizeAllocation(context.Background(), domain.FinalizeAllocationRequest{
		MealPlanID:   requirement.MealPlanID,
		IngredientID: requirement.IngredientID,
		Entries: []domain.AllocationEntryRequest{
			{LotID: first.ID.String(), Quantity: 3},
			{LotID: second.ID.String(), Quantity: 2},
		},
	}, userID.String())
	if err != nil {
		t.Fatalf("FinalizeAllocation: %v", err)
	}

	if len(res) != 2 || res[0].Status != StatusPlanning {
		t.Errorf("responses = %+v, want two Planning records", res)
	}
	if repo.inserted != 2 {
		t.Errorf("inserted = %d, want 2", repo.inserted)
	}
	for _, record := range repo.records {
		if record.StatusID != repo.statuses[StatusPlanning] {
			t.Errorf("record persisted with status %v, want Planning", record.StatusID)
		}
	}
}

func TestUpdateAllocationMissingRecord(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 5)
	lot := repo.addLot(userID, requirement.IngredientID, 10)

	service := NewAllocationService(repo)
	_, err := service.UpdateAllocation(context.Background(), domain.FinalizeAllocationRequest{
		MealPlanID:   requirement.MealPlanID,
		IngredientID: requirement.IngredientID,
		Entries: []domain.AllocationEntryRequest{
			{LotID: lot.ID.String(), Quantity: 2},
		},
	}, userID.String())

	if !errors.Is(err, domain.ErrAllocationNotFound) {
		t.Errorf("error = %v, want ErrAllocationNotFound", err)
	}
}

func TestDeleteAllocationUnauthorized(t *testing.T) {
	repo := newFakeRepository()
	plan := repo.addMealPlan(uuid.New())

	service := NewAllocationService(repo)
	err := service.DeleteAllocation(context.Background(), domain.DeleteAllocationRequest{
		MealPlanID:   plan.ID.String(),
		IngredientID: uuid.New().String(),
		LotID:        uuid.New().String(),
	}, uuid.New().String())

	if !errors.Is(err, domain.ErrUnauthorizedMealAccess) {
		t.Errorf("error = %v, want ErrUnauthorizedMealAccess", err)
	}
}

func TestAutoDistributeSkipsAllocatedAndContinues(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)

	covered := repo.addRequirement(plan.ID, 5)
	lot := repo.addLot(userID, covered.IngredientID, 10)
	ingredientUUID, _ := uuid.Parse(covered.IngredientID)
	repo.records = append(repo.records, &entities.AllocationRecord{
		ID:             uuid.New(),
		InventoryLotID: lot.ID,
		MealPlanID:     plan.ID,
		IngredientID:   ingredientUUID,
		UsedQuantity:   5,
		StatusID:       repo.statuses[StatusPlanning],
	})

	starved := repo.addRequirement(plan.ID, 4) // no lots at all
	fresh := repo.addRequirement(plan.ID, 3)
	repo.addLot(userID, fresh.IngredientID, 8)

	service := NewAllocationService(repo)
	res, err := service.AutoDistributeAll(context.Background(), domain.MealPlanIDsRequest{
		MealPlanIDs: []string{plan.ID.String()},
	}, userID.String())
	if err != nil {
		t.Fatalf("AutoDistributeAll: %v", err)
	}

	if len(res.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(res.Results))
	}
	if res.Results[0].Allocated != 5 || res.Results[0].Error != "" {
		t.Errorf("covered requirement should report its existing allocation untouched")
	}
	if res.Results[1].IngredientID != starved.IngredientID || res.Results[1].Error == "" {
		t.Errorf("starved requirement should carry an error, got %+v", res.Results[1])
	}
	if res.Results[2].Allocated != 3 || res.Results[2].Error != "" {
		t.Errorf("fresh requirement should be distributed, got %+v", res.Results[2])
	}
	if res.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Failed)
	}
}

func TestFinishCookingDeductsAndCompletesOnce(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 4)
	lot := repo.addLot(userID, requirement.IngredientID, 10)

	ingredientUUID, _ := uuid.Parse(requirement.IngredientID)
	repo.records = append(repo.records, &entities.AllocationRecord{
		ID:             uuid.New(),
		InventoryLotID: lot.ID,
		MealPlanID:     plan.ID,
		IngredientID:   ingredientUUID,
		UsedQuantity:   4,
		StatusID:       repo.statuses[StatusPlanning],
	})

	service := NewAllocationService(repo)
	req := domain.MealPlanIDsRequest{MealPlanIDs: []string{plan.ID.String()}}

	res, err := service.FinishCooking(context.Background(), req, userID.String())
	if err != nil {
		t.Fatalf("FinishCooking: %v", err)
	}
	if res.RecordsCompleted != 1 || res.LotsDeducted != 1 {
		t.Errorf("completed %d / deducted %d, want 1 / 1", res.RecordsCompleted, res.LotsDeducted)
	}
	if lot.QuantityAvailable != 6 {
		t.Errorf("lot quantity = %v, want 6", lot.QuantityAvailable)
	}

	// A second call must not deduct again: the record is Complete now.
	res, err = service.FinishCooking(context.Background(), req, userID.String())
	if err != nil {
		t.Fatalf("second FinishCooking: %v", err)
	}
	if res.RecordsCompleted != 0 || lot.QuantityAvailable != 6 {
		t.Errorf("repeat call changed state: completed %d, quantity %v", res.RecordsCompleted, lot.QuantityAvailable)
	}
}

func TestFinishCookingFloorsDeductionAtZero(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 15)
	lot := repo.addLot(userID, requirement.IngredientID, 10)

	ingredientUUID, _ := uuid.Parse(requirement.IngredientID)
	repo.records = append(repo.records, &entities.AllocationRecord{
		ID:             uuid.New(),
		InventoryLotID: lot.ID,
		MealPlanID:     plan.ID,
		IngredientID:   ingredientUUID,
		UsedQuantity:   15,
		StatusID:       repo.statuses[StatusPlanning],
	})

	service := NewAllocationService(repo)
	_, err := service.FinishCooking(context.Background(), domain.MealPlanIDsRequest{
		MealPlanIDs: []string{plan.ID.String()},
	}, userID.String())
	if err != nil {
		t.Fatalf("FinishCooking: %v", err)
	}

	if lot.QuantityAvailable != 0 {
		t.Errorf("lot quantity = %v, want floored at 0", lot.QuantityAvailable)
	}
}

func TestFinishCookingReportsFailedLots(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 4)
	broken := repo.addLot(userID, requirement.IngredientID, 10)
	healthy := repo.addLot(userID, requirement.IngredientID, 10)
	repo.failLots[broken.ID.String()] = true

	ingredientUUID, _ := uuid.Parse(requirement.IngredientID)
	for _, lot := range []*entities.InventoryLot{broken, healthy} {
		repo.records = append(repo.records, &entities.AllocationRecord{
			ID:             uuid.New(),
			InventoryLotID: lot.ID,
			MealPlanID:     plan.ID,
			IngredientID:   ingredientUUID,
			UsedQuantity:   2,
			StatusID:       repo.statuses[StatusPlanning],
		})
	}

	service := NewAllocationService(repo)
	res, err := service.FinishCooking(context.Background(), domain.MealPlanIDsRequest{
		MealPlanIDs: []string{plan.ID.String()},
	}, userID.String())

	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("error = %v, want wrapped ErrStoreUnavailable", err)
	}
	if len(res.FailedLots) != 1 || res.FailedLots[0] != broken.ID.String() {
		t.Errorf("FailedLots = %v, want the broken lot", res.FailedLots)
	}
	if res.LotsDeducted != 1 || healthy.QuantityAvailable != 8 {
		t.Errorf("healthy lot should still be deducted: deducted %d, quantity %v", res.LotsDeducted, healthy.QuantityAvailable)
	}
}

func TestResetAllocationsDeletesRecords(t *testing.T) {
	repo := newFakeRepository()
	userID := uuid.New()
	plan := repo.addMealPlan(userID)
	requirement := repo.addRequirement(plan.ID, 4)
	lot := repo.addLot(userID, requirement.IngredientID, 10)

	ingredientUUID, _ := uuid.Parse(requirement.IngredientID)
	repo.records = append(repo.records, &entities.AllocationRecord{
		ID:             uuid.New(),
		InventoryLotID: lot.ID,
		MealPlanID:     plan.ID,
		IngredientID:   ingredientUUID,
		UsedQuantity:   4,
		StatusID:       repo.statuses[StatusPlanning],
	})

	service := NewAllocationService(repo)
	if err := service.ResetAllocations(context.Background(), domain.MealPlanIDsRequest{
		MealPlanIDs: []string{plan.ID.String()},
	}, userID.String()); err != nil {
		t.Fatalf("ResetAllocations: %v", err)
	}

	if len(repo.records) != 0 {
		t.Errorf("records remaining = %d, want 0", len(repo.records))
	}
	if lot.QuantityAvailable != 10 {
		t.Errorf("reset must not touch stock, quantity = %v", lot.QuantityAvailable)
	}
}
