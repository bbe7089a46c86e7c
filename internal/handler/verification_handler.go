package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kejani-backend/internal/middleware"
	"kejani-backend/internal/service/property"
)

type VerificationHandler struct {
	propertyService property.Service
}

func NewVerificationHandler(propertyService property.Service) *VerificationHandler {
	return &VerificationHandler{propertyService: propertyService}
}

func (h *VerificationHandler) Pending(c *fiber.Ctx) error {
	properties, err := h.propertyService.PendingVerifications(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"properties": properties,
		"count":      len(properties),
	})
}

func (h *VerificationHandler) Verify(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	prop, err := h.propertyService.Verify(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"property": prop})
}

func (h *VerificationHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	prop, err := h.propertyService.Reject(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"property": prop})
}
