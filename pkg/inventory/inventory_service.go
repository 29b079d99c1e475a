package inventory

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/entities"
	"Pantry-Planner/internal/utils/mailing"
	"Pantry-Planner/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		AddLot(ctx context.Context, req domain.AddLotRequest, userID string) (domain.AddLotResponse, error)
		UpdateLot(ctx context.Context, id string, req domain.UpdateLotRequest, userID string) error
		DeleteLot(ctx context.Context, id string, userID string) error
		GetLots(ctx context.Context, userID string, status string, page, limit int) ([]domain.LotResponse, int64, error)
		GetLotByID(ctx context.Context, id string, userID string) (domain.LotResponse, error)
		MarkLot(ctx context.Context, req domain.MarkLotRequest, userID string) error
		UploadLotImage(ctx context.Context, req domain.UploadLotImageRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
		SendExpiryReport(ctx context.Context, userID, email string) error
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		s3                  storage.AwsS3
	}
)

func NewInventoryService(inventoryRepository InventoryRepository, s3 storage.AwsS3) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		s3:                  s3,
	}
}

func (s *inventoryService) AddLot(ctx context.Context, req domain.AddLotRequest, userID string) (domain.AddLotResponse, error) {
	quantity, err := domain.ParseQuantity(req.Quantity)
	if err != nil {
		return domain.AddLotResponse{}, err
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.AddLotResponse{}, domain.ErrInvalidExpiryDate
		}
		expiryDate = &parsed
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.AddLotResponse{}, domain.ErrParseUUID
	}

	ingredient, err := s.inventoryRepository.GetOrCreateIngredient(ctx, userID, req.IngredientName, quantity.Unit)
	if err != nil {
		return domain.AddLotResponse{}, err
	}

	lot := &entities.InventoryLot{
		ID:                uuid.New(),
		UserID:            userUUID,
		IngredientID:      ingredient.ID,
		QuantityAvailable: quantity.Value,
		InitialQuantity:   quantity.Value,
		Unit:              quantity.Unit,
		ExpiryDate:        expiryDate,
		Status:            determineStatus(expiryDate),
		AddedManually:     true,
	}

	if err := s.inventoryRepository.AddLot(ctx, lot); err != nil {
		return domain.AddLotResponse{}, err
	}

	return domain.AddLotResponse{
		ID:                lot.ID.String(),
		IngredientID:      ingredient.ID.String(),
		IngredientName:    ingredient.Name,
		QuantityAvailable: lot.QuantityAvailable,
		InitialQuantity:   lot.InitialQuantity,
		Unit:              lot.Unit,
		ExpiryDate:        lot.ExpiryDate,
		Status:            lot.Status,
	}, nil
}

func (s *inventoryService) UpdateLot(ctx context.Context, id string, req domain.UpdateLotRequest, userID string) error {
	lot, err := s.inventoryRepository.GetLotByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLotNotFound
		}
		return err
	}

	if lot.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.Quantity != "" {
		quantity, err := domain.ParseQuantity(req.Quantity)
		if err != nil {
			return err
		}
		lot.QuantityAvailable = quantity.Value
		if quantity.Value > lot.InitialQuantity {
			lot.InitialQuantity = quantity.Value
		}
	}

	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		lot.ExpiryDate = &expiryDate
		lot.Status = determineStatus(lot.ExpiryDate)
	}

	return s.inventoryRepository.UpdateLot(ctx, lot)
}

func (s *inventoryService) DeleteLot(ctx context.Context, id string, userID string) error {
	lot, err := s.inventoryRepository.GetLotByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLotNotFound
		}
		return err
	}

	if lot.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if lot.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(lot.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.inventoryRepository.DeleteLot(ctx, id)
}

func (s *inventoryService) GetLots(ctx context.Context, userID string, status string, page, limit int) ([]domain.LotResponse, int64, error) {
	lots, count, err := s.inventoryRepository.GetLots(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.LotResponse
	for _, lot := range lots {
		response = append(response, lotResponse(lot))
	}

	return response, count, nil
}

func (s *inventoryService) GetLotByID(ctx context.Context, id string, userID string) (domain.LotResponse, error) {
	lot, err := s.inventoryRepository.GetLotByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LotResponse{}, domain.ErrLotNotFound
		}
		return domain.LotResponse{}, err
	}

	if lot.UserID.String() != userID {
		return domain.LotResponse{}, domain.ErrUnauthorizedAccess
	}

	return lotResponse(lot), nil
}

// MarkLot records the terminal used/discarded actions. The remaining stock is
// zeroed so the lot stops showing up as an allocation candidate.
func (s *inventoryService) MarkLot(ctx context.Context, req domain.MarkLotRequest, userID string) error {
	if req.Status != "Used" && req.Status != "Discarded" {
		return domain.ErrInvalidLotMarkState
	}

	lot, err := s.inventoryRepository.GetLotByID(ctx, req.LotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLotNotFound
		}
		return err
	}

	if lot.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if lot.Status == "Used" || lot.Status == "Discarded" {
		return domain.ErrLotAlreadyConsumed
	}

	return s.inventoryRepository.MarkLotStatus(ctx, req.LotID, req.Status, 0)
}

func (s *inventoryService) UploadLotImage(ctx context.Context, req domain.UploadLotImageRequest, userID string) error {
	lot, err := s.inventoryRepository.GetLotByID(ctx, req.LotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLotNotFound
		}
		return err
	}

	if lot.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("inventory-lot-%s", lot.ID.String())
	var objectKey string
	var uploadErr error

	if lot.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(lot.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "inventory-lots", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "inventory-lots", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	lot.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.inventoryRepository.UpdateLot(ctx, lot)
}

func (s *inventoryService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	stats, err := s.inventoryRepository.GetDashboardStats(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	return domain.DashboardStatsResponse{
		TotalLots:     int(stats["total_lots"].(int64)),
		SafeLots:      int(stats["safe_lots"].(int64)),
		WarningLots:   int(stats["warning_lots"].(int64)),
		ExpiredLots:   int(stats["expired_lots"].(int64)),
		ConsumedLots:  int(stats["used_lots"].(int64)),
		DiscardedLots: int(stats["discarded_lots"].(int64)),
		TotalStock:    stats["total_stock"].(float64),
	}, nil
}

// SendExpiryReport mails the user a summary of lots expiring within the next
// three days.
func (s *inventoryService) SendExpiryReport(ctx context.Context, userID, email string) error {
	now := time.Now()
	threshold := now.AddDate(0, 0, 3)

	lots, err := s.inventoryRepository.GetLotsByExpiryRange(ctx, userID, now, threshold)
	if err != nil {
		return err
	}
	if len(lots) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString("<p>The following lots expire within 3 days:</p><ul>")
	for _, lot := range lots {
		name := lot.Unit
		if lot.Ingredient != nil {
			name = lot.Ingredient.Name
		}
		body.WriteString(fmt.Sprintf("<li>%s: %.2f %s, expires %s</li>",
			name, lot.QuantityAvailable, lot.Unit, lot.ExpiryDate.Format("2006-01-02")))
	}
	body.WriteString("</ul>")

	return mailing.SendMail(email, "Lots expiring soon", body.String())
}

func lotResponse(lot *entities.InventoryLot) domain.LotResponse {
	response := domain.LotResponse{
		ID:                lot.ID.String(),
		IngredientID:      lot.IngredientID.String(),
		QuantityAvailable: lot.QuantityAvailable,
		InitialQuantity:   lot.InitialQuantity,
		Unit:              lot.Unit,
		ExpiryDate:        lot.ExpiryDate,
		Status:            lot.Status,
		ImageURL:          lot.ImageURL,
		CreatedAt:         lot.CreatedAt,
	}
	if lot.Ingredient != nil {
		response.IngredientName = lot.Ingredient.Name
	}
	return response
}

func determineStatus(expiryDate *time.Time) string {
	if expiryDate == nil {
		return "Safe"
	}

	now := time.Now()
	if expiryDate.Before(now) {
		return "Expired"
	}

	warningThreshold := now.AddDate(0, 0, 3)
	if expiryDate.Before(warningThreshold) {
		return "Warning"
	}

	return "Safe"
}
