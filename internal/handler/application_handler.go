package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/middleware"
	"kejani-backend/internal/service/application"
)

type ApplicationHandler struct {
	applicationService application.Service
}

func NewApplicationHandler(applicationService application.Service) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var input domain.CreateApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	app, err := h.applicationService.Submit(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"application": app})
}

func (h *ApplicationHandler) ListPending(c *fiber.Ctx) error {
	appType := domain.ApplicationType(c.Query("type", string(domain.ApplicationHomeOwner)))

	applications, err := h.applicationService.ListPending(c.Context(), middleware.GetCurrentUser(c), appType)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"applications": applications,
		"count":        len(applications),
	})
}

func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	if err := h.applicationService.Approve(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Application approved",
	})
}

func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	if err := h.applicationService.Reject(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Application rejected",
	})
}
