package inventory

import (
	"Pantry-Planner/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		GetOrCreateIngredient(ctx context.Context, userID, name, unit string) (*entities.Ingredient, error)
		AddLot(ctx context.Context, lot *entities.InventoryLot) error
		GetLotByID(ctx context.Context, id string) (*entities.InventoryLot, error)
		UpdateLot(ctx context.Context, lot *entities.InventoryLot) error
		DeleteLot(ctx context.Context, id string) error
		GetLots(ctx context.Context, userID string, status string, page, limit int) ([]*entities.InventoryLot, int64, error)
		GetLotsByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.InventoryLot, error)
		MarkLotStatus(ctx context.Context, id string, status string, quantityAvailable float64) error
		GetDashboardStats(ctx context.Context, userID string) (map[string]interface{}, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetOrCreateIngredient(ctx context.Context, userID, name, unit string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	userUUID, parseErr := uuid.Parse(userID)
	if parseErr != nil {
		return nil, parseErr
	}

	ingredient = entities.Ingredient{
		UserID: userUUID,
		Name:   name,
		Unit:   unit,
	}
	if err := r.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *inventoryRepository) AddLot(ctx context.Context, lot *entities.InventoryLot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *inventoryRepository) GetLotByID(ctx context.Context, id string) (*entities.InventoryLot, error) {
	var lot entities.InventoryLot
	if err := r.db.WithContext(ctx).Preload("Ingredient").Where("id = ?", id).First(&lot).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *inventoryRepository) UpdateLot(ctx context.Context, lot *entities.InventoryLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

func (r *inventoryRepository) DeleteLot(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.InventoryLot{}).Error
}

func (r *inventoryRepository) GetLots(ctx context.Context, userID string, status string, page, limit int) ([]*entities.InventoryLot, int64, error) {
	var lots []*entities.InventoryLot
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.InventoryLot{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Ingredient").
		Offset(offset).Limit(limit).
		Order("expiry_date asc NULLS LAST").
		Find(&lots).Error; err != nil {
		return nil, 0, err
	}

	return lots, count, nil
}

func (r *inventoryRepository) GetLotsByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.InventoryLot, error) {
	var lots []*entities.InventoryLot

	if err := r.db.WithContext(ctx).Preload("Ingredient").
		Where("user_id = ? AND expiry_date BETWEEN ? AND ? AND status IN ?",
			userID, startDate, endDate, []string{"Safe", "Warning"}).
		Order("expiry_date asc").
		Find(&lots).Error; err != nil {
		return nil, err
	}

	return lots, nil
}

func (r *inventoryRepository) MarkLotStatus(ctx context.Context, id string, status string, quantityAvailable float64) error {
	result := r.db.WithContext(ctx).Model(&entities.InventoryLot{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             status,
			"quantity_available": quantityAvailable,
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

func (r *inventoryRepository) GetDashboardStats(ctx context.Context, userID string) (map[string]interface{}, error) {
	var totalLots int64
	counts := map[string]int64{}

	if err := r.db.WithContext(ctx).Model(&entities.InventoryLot{}).
		Where("user_id = ?", userID).
		Count(&totalLots).Error; err != nil {
		return nil, err
	}

	for _, status := range []string{"Safe", "Warning", "Expired", "Used", "Discarded"} {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entities.InventoryLot{}).
			Where("user_id = ? AND status = ?", userID, status).
			Count(&count).Error; err != nil {
			return nil, err
		}
		counts[status] = count
	}

	var totalStock float64
	if err := r.db.WithContext(ctx).Model(&entities.InventoryLot{}).
		Where("user_id = ? AND status IN ?", userID, []string{"Safe", "Warning"}).
		Select("COALESCE(SUM(quantity_available), 0)").
		Scan(&totalStock).Error; err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"total_lots":     totalLots,
		"safe_lots":      counts["Safe"],
		"warning_lots":   counts["Warning"],
		"expired_lots":   counts["Expired"],
		"used_lots":      counts["Used"],
		"discarded_lots": counts["Discarded"],
		"total_stock":    totalStock,
	}

	return stats, nil
}
