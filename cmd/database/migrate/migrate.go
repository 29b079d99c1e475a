package migration

import (
	entities2 "Pantry-Planner/entities"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities2.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.InventoryLot{}); err != nil {
		log.Fatalf("Error migrating inventory lot database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.MealPlan{}); err != nil {
		log.Fatalf("Error migrating meal plan database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.AllocationStatus{}); err != nil {
		log.Fatalf("Error migrating allocation status database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.AllocationRecord{}); err != nil {
		log.Fatalf("Error migrating allocation record database: %v", err)
		return err
	}

	if err := seedAllocationStatuses(db); err != nil {
		log.Fatalf("Error seeding allocation statuses: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

func seedAllocationStatuses(db *gorm.DB) error {
	for _, name := range []string{"Planning", "Complete"} {
		var count int64
		if err := db.Model(&entities2.AllocationStatus{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		status := entities2.AllocationStatus{ID: uuid.New(), Name: name}
		if err := db.Create(&status).Error; err != nil {
			return err
		}
	}
	return nil
}
