package entities

import (
	"time"

	"github.com/google/uuid"
)

type MealPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	RecipeID    uuid.UUID `json:"recipe_id"`
	MealType    string    `json:"meal_type"` // "Breakfast", "Lunch", "Dinner", "Snack"
	PlannedDate time.Time `json:"planned_date"`

	User              *User               `gorm:"foreignKey:UserID"`
	Recipe            *Recipe             `gorm:"foreignKey:RecipeID"`
	AllocationRecords []*AllocationRecord `gorm:"foreignKey:MealPlanID"`
	Timestamp
}

type AllocationStatus struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"` // "Planning", "Complete"
}

// AllocationRecord links a lot to a meal plan's ingredient need. One row per
// (meal_plan, lot, ingredient); status moves Planning -> Complete exactly once.
type AllocationRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	InventoryLotID uuid.UUID `gorm:"uniqueIndex:idx_allocation_key" json:"inventory_lot_id"`
	MealPlanID     uuid.UUID `gorm:"uniqueIndex:idx_allocation_key" json:"meal_plan_id"`
	IngredientID   uuid.UUID `gorm:"uniqueIndex:idx_allocation_key" json:"ingredient_id"`
	UsedQuantity   float64   `json:"used_quantity"`
	StatusID       uuid.UUID `json:"status_id"`

	InventoryLot *InventoryLot     `gorm:"foreignKey:InventoryLotID"`
	MealPlan     *MealPlan         `gorm:"foreignKey:MealPlanID"`
	Ingredient   *Ingredient       `gorm:"foreignKey:IngredientID"`
	Status       *AllocationStatus `gorm:"foreignKey:StatusID"`
	Timestamp
}
