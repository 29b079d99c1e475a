package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	MessageSuccessProposeAllocation = "allocation proposal generated"
	MessageSuccessFinalize          = "allocation saved successfully"
	MessageSuccessUpdateAllocation  = "allocation updated successfully"
	MessageSuccessDeleteAllocation  = "allocation removed successfully"
	MessageSuccessResetAllocations  = "allocations reset successfully"
	MessageSuccessAutoDistribute    = "automatic distribution finished"
	MessageSuccessFinishCooking     = "meal plans marked as cooked"

	MessageFailedProposeAllocation = "failed to generate allocation proposal"
	MessageFailedFinalize          = "failed to save allocation"
	MessageFailedUpdateAllocation  = "failed to update allocation"
	MessageFailedDeleteAllocation  = "failed to remove allocation"
	MessageFailedResetAllocations  = "failed to reset allocations"
	MessageFailedAutoDistribute    = "failed to auto distribute allocations"
	MessageFailedFinishCooking     = "failed to mark meal plans as cooked"

	WarningInsufficientStock = "available lots cannot fully cover the required quantity"

	ErrEmptySelection       = errors.New("no lots selected for allocation")
	ErrCapExceeded          = errors.New("selected quantity exceeds the required quantity")
	ErrInsufficientStock    = errors.New("insufficient stock to satisfy requirement")
	ErrQuantityExceedsLot   = errors.New("quantity exceeds lot availability")
	ErrLotNotSelected       = errors.New("lot is not part of the current selection")
	ErrAllocationNotFound   = errors.New("allocation record not found")
	ErrRequirementNotFound  = errors.New("ingredient requirement not found")
	ErrStoreUnavailable     = errors.New("data store unavailable")
	ErrNoExceedToDistribute = errors.New("no exceed amount to distribute")
)

// InsufficientSelectionError reports a confirm step where the preselected
// lots cannot cover the requirement. Carries the totals for the UI message.
type InsufficientSelectionError struct {
	Selected float64
	Required float64
}

func (e *InsufficientSelectionError) Error() string {
	return fmt.Sprintf("selected lots cover %.2f of required %.2f", e.Selected, e.Required)
}

type (
	AllocationEntryRequest struct {
		LotID    string  `json:"lot_id" validate:"required,uuid"`
		Quantity float64 `json:"quantity" validate:"omitempty"`
	}

	FinalizeAllocationRequest struct {
		MealPlanID   string                   `json:"meal_plan_id" validate:"required,uuid"`
		IngredientID string                   `json:"ingredient_id" validate:"required,uuid"`
		Entries      []AllocationEntryRequest `json:"entries" validate:"required,dive"`
	}

	DeleteAllocationRequest struct {
		MealPlanID   string `json:"meal_plan_id" validate:"required,uuid"`
		IngredientID string `json:"ingredient_id" validate:"required,uuid"`
		LotID        string `json:"lot_id" validate:"required,uuid"`
	}

	MealPlanIDsRequest struct {
		MealPlanIDs []string `json:"meal_plan_ids" validate:"required,min=1,dive,uuid"`
	}

	LotOptionResponse struct {
		LotID             string     `json:"lot_id"`
		QuantityAvailable float64    `json:"quantity_available"`
		Unit              string     `json:"unit"`
		ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
		SelectedQuantity  float64    `json:"selected_quantity"`
		Preselected       bool       `json:"preselected"`
	}

	ProposeAllocationResponse struct {
		MealPlanID       string              `json:"meal_plan_id"`
		IngredientID     string              `json:"ingredient_id"`
		IngredientName   string              `json:"ingredient_name"`
		QuantityRequired float64             `json:"quantity_required"`
		Unit             string              `json:"unit"`
		Lots             []LotOptionResponse `json:"lots"`
		Shortfall        float64             `json:"shortfall"`
		Warning          string              `json:"warning,omitempty"`
		FromRecords      bool                `json:"from_records"`
	}

	AllocationRecordResponse struct {
		LotID        string    `json:"lot_id"`
		MealPlanID   string    `json:"meal_plan_id"`
		IngredientID string    `json:"ingredient_id"`
		UsedQuantity float64   `json:"used_quantity"`
		Status       string    `json:"status"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	AutoDistributeResult struct {
		MealPlanID   string  `json:"meal_plan_id"`
		IngredientID string  `json:"ingredient_id"`
		Allocated    float64 `json:"allocated"`
		Shortfall    float64 `json:"shortfall"`
		Error        string  `json:"error,omitempty"`
	}

	AutoDistributeResponse struct {
		Results []AutoDistributeResult `json:"results"`
		Failed  int                    `json:"failed"`
	}

	FinishCookingResponse struct {
		RecordsCompleted int      `json:"records_completed"`
		LotsDeducted     int      `json:"lots_deducted"`
		FailedLots       []string `json:"failed_lots,omitempty"`
	}
)
