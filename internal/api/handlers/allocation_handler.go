package handlers

import (
	"Pantry-Planner/domain"
	"Pantry-Planner/internal/api/presenters"
	"Pantry-Planner/pkg/allocation"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AllocationHandler interface {
		ProposeAllocation(c *fiber.Ctx) error
		FinalizeAllocation(c *fiber.Ctx) error
		UpdateAllocation(c *fiber.Ctx) error
		DeleteAllocation(c *fiber.Ctx) error
		ResetAllocations(c *fiber.Ctx) error
		AutoDistributeAll(c *fiber.Ctx) error
		FinishCooking(c *fiber.Ctx) error
	}

	allocationHandler struct {
		allocationService allocation.AllocationService
		validator         *validator.Validate
	}
)

func NewAllocationHandler(allocationService allocation.AllocationService, validator *validator.Validate) AllocationHandler {
	return &allocationHandler{
		allocationService: allocationService,
		validator:         validator,
	}
}

func (h *allocationHandler) ProposeAllocation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	mealPlanID := c.Params("mealPlanId")
	ingredientID := c.Params("ingredientId")

	res, err := h.allocationService.ProposeAllocation(c.Context(), mealPlanID, ingredientID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProposeAllocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessProposeAllocation)
}

func (h *allocationHandler) FinalizeAllocation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.FinalizeAllocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFinalize, err)
	}

	res, err := h.allocationService.FinalizeAllocation(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySelection) || errors.Is(err, domain.ErrCapExceeded) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedFinalize, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFinalize, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessFinalize)
}

func (h *allocationHandler) UpdateAllocation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.FinalizeAllocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateAllocation, err)
	}

	res, err := h.allocationService.UpdateAllocation(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySelection) || errors.Is(err, domain.ErrCapExceeded) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedUpdateAllocation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateAllocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateAllocation)
}

func (h *allocationHandler) DeleteAllocation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.DeleteAllocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteAllocation, err)
	}

	if err := h.allocationService.DeleteAllocation(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteAllocation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAllocation)
}

func (h *allocationHandler) ResetAllocations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MealPlanIDsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResetAllocations, err)
	}

	if err := h.allocationService.ResetAllocations(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResetAllocations, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetAllocations)
}

func (h *allocationHandler) AutoDistributeAll(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MealPlanIDsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAutoDistribute, err)
	}

	res, err := h.allocationService.AutoDistributeAll(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAutoDistribute, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAutoDistribute)
}

func (h *allocationHandler) FinishCooking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MealPlanIDsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFinishCooking, err)
	}

	res, err := h.allocationService.FinishCooking(c.Context(), *req, userID)
	if err != nil {
		// Partial lot deductions still return the applied work.
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedFinishCooking, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessFinishCooking)
}
