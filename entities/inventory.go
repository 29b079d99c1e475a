package entities

import (
	"time"

	"github.com/google/uuid"
)

type Ingredient struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

// InventoryLot is one receipt/purchase batch of an ingredient. Stock is only
// decremented by cooking completion or an explicit used/discarded action,
// never deleted by the allocation flow.
type InventoryLot struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	IngredientID      uuid.UUID  `json:"ingredient_id"`
	QuantityAvailable float64    `json:"quantity_available"`
	InitialQuantity   float64    `json:"initial_quantity"`
	Unit              string     `json:"unit"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	Status            string     `json:"status"` // "Safe", "Warning", "Expired", "Used", "Discarded"
	ImageURL          string     `json:"image_url,omitempty"`
	AddedManually     bool       `json:"added_manually"`

	User       *User       `gorm:"foreignKey:UserID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Timestamp
}
