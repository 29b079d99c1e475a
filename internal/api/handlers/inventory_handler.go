package handlers

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/internal/api/presenters"
	"Pantry-Planner/pkg/inventory"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		AddLot(c *fiber.Ctx) error
		UpdateLot(c *fiber.Ctx) error
		DeleteLot(c *fiber.Ctx) error
		GetLots(c *fiber.Ctx) error
		GetLotDetails(c *fiber.Ctx) error
		MarkLot(c *fiber.Ctx) error
		UploadLotImage(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
		SendExpiryReport(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) AddLot(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddLotRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLot, err)
	}

	res, err := h.inventoryService.AddLot(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLot, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddLot)
}

func (h *inventoryHandler) UpdateLot(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	lotID := c.Params("id")
	req := new(domain.UpdateLotRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLot, err)
	}

	if err := h.inventoryService.UpdateLot(c.Context(), lotID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLot, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateLot)
}

func (h *inventoryHandler) DeleteLot(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	lotID := c.Params("id")

	if err := h.inventoryService.DeleteLot(c.Context(), lotID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteLot, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteLot)
}

func (h *inventoryHandler) GetLots(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	lots, count, err := h.inventoryService.GetLots(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLots, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"lots": lots,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetLots)
}

func (h *inventoryHandler) GetLotDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	lotID := c.Params("id")

	lot, err := h.inventoryService.GetLotByID(c.Context(), lotID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLots, err)
	}

	return presenters.SuccessResponse(c, lot, fiber.StatusOK, domain.MessageSuccessGetLots)
}

func (h *inventoryHandler) MarkLot(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MarkLotRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkLot, err)
	}

	if err := h.inventoryService.MarkLot(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkLot, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkLot)
}

func (h *inventoryHandler) UploadLotImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadLotImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadLotImage, err)
	}

	if err := h.inventoryService.UploadLotImage(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadLotImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadLotImage)
}

func (h *inventoryHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.inventoryService.GetDashboardStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboardStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}

func (h *inventoryHandler) SendExpiryReport(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	email := c.Query("email")
	if email == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendExpiryReport, nil)
	}

	if err := h.inventoryService.SendExpiryReport(c.Context(), userID, email); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendExpiryReport, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendExpiryReport)
}
