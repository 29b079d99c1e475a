package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddLot            = "inventory lot added successfully"
	MessageSuccessUpdateLot         = "inventory lot updated successfully"
	MessageSuccessDeleteLot         = "inventory lot deleted successfully"
	MessageSuccessGetLots           = "inventory lots retrieved successfully"
	MessageSuccessMarkLot           = "inventory lot marked successfully"
	MessageSuccessUploadLotImage    = "lot image uploaded successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"
	MessageSuccessSendExpiryReport  = "expiry report sent successfully"

	MessageFailedAddLot            = "failed to add inventory lot"
	MessageFailedUpdateLot         = "failed to update inventory lot"
	MessageFailedDeleteLot         = "failed to delete inventory lot"
	MessageFailedGetLots           = "failed to retrieve inventory lots"
	MessageFailedMarkLot           = "failed to mark inventory lot"
	MessageFailedUploadLotImage    = "failed to upload lot image"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"
	MessageFailedSendExpiryReport  = "failed to send expiry report"

	ErrLotNotFound         = errors.New("inventory lot not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrInvalidExpiryDate   = errors.New("invalid expiry date")
	ErrInvalidLotQuantity  = errors.New("lot quantity must be positive")
	ErrLotAlreadyConsumed  = errors.New("inventory lot already used or discarded")
	ErrUnauthorizedAccess  = errors.New("unauthorized access to inventory lot")
	ErrInvalidImageFormat  = errors.New("invalid image format")
	ErrInvalidLotMarkState = errors.New("lot can only be marked as Used or Discarded")
)

type (
	AddLotRequest struct {
		IngredientName string `json:"ingredient_name" validate:"required"`
		Quantity       string `json:"quantity" validate:"required"`
		ExpiryDate     string `json:"expiry_date" validate:"omitempty"`
	}

	AddLotResponse struct {
		ID                string     `json:"id"`
		IngredientID      string     `json:"ingredient_id"`
		IngredientName    string     `json:"ingredient_name"`
		QuantityAvailable float64    `json:"quantity_available"`
		InitialQuantity   float64    `json:"initial_quantity"`
		Unit              string     `json:"unit"`
		ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
		Status            string     `json:"status"`
	}

	UpdateLotRequest struct {
		Quantity   string `json:"quantity" validate:"omitempty"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty"`
	}

	LotResponse struct {
		ID                string     `json:"id"`
		IngredientID      string     `json:"ingredient_id"`
		IngredientName    string     `json:"ingredient_name"`
		QuantityAvailable float64    `json:"quantity_available"`
		InitialQuantity   float64    `json:"initial_quantity"`
		Unit              string     `json:"unit"`
		ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
		Status            string     `json:"status"`
		ImageURL          string     `json:"image_url,omitempty"`
		CreatedAt         time.Time  `json:"created_at"`
	}

	MarkLotRequest struct {
		LotID  string `json:"lot_id" validate:"required,uuid"`
		Status string `json:"status" validate:"required"`
	}

	UploadLotImageRequest struct {
		LotID string                `json:"lot_id" form:"lot_id" validate:"required,uuid"`
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	DashboardStatsResponse struct {
		TotalLots     int     `json:"total_lots"`
		SafeLots      int     `json:"safe_lots"`
		WarningLots   int     `json:"warning_lots"`
		ExpiredLots   int     `json:"expired_lots"`
		ConsumedLots  int     `json:"consumed_lots"`
		DiscardedLots int     `json:"discarded_lots"`
		TotalStock    float64 `json:"total_stock"`
	}
)
