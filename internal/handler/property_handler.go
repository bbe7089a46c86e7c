package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/middleware"
	"kejani-backend/internal/service/property"
)

type PropertyHandler struct {
	propertyService property.Service
}

func NewPropertyHandler(propertyService property.Service) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

func (h *PropertyHandler) List(c *fiber.Ctx) error {
	var filter domain.PropertyFilter
	if err := c.QueryParser(&filter); err != nil {
		return middleware.BadRequest("Invalid filter parameters")
	}

	pageSize := c.QueryInt("page_size", domain.DefaultPageSize)
	cursor := c.Query("cursor")

	page, err := h.propertyService.List(c.Context(), filter, pageSize, cursor)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *PropertyHandler) Search(c *fiber.Ctx) error {
	var filter domain.PropertyFilter
	if err := c.QueryParser(&filter); err != nil {
		return middleware.BadRequest("Invalid filter parameters")
	}

	term := c.Query("q")
	properties, err := h.propertyService.Search(c.Context(), term, filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"properties": properties,
		"count":      len(properties),
	})
}

func (h *PropertyHandler) Featured(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	properties, err := h.propertyService.Featured(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"properties": properties,
		"count":      len(properties),
	})
}

func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	prop, err := h.propertyService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"property": prop})
}

func (h *PropertyHandler) GetOwnerContact(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	contact, err := h.propertyService.GetOwnerContact(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"owner_contact": contact})
}

func (h *PropertyHandler) ListMine(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	properties, err := h.propertyService.ListByOwner(c.Context(), ownerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"properties": properties,
		"count":      len(properties),
	})
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var input domain.CreatePropertyInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	prop, err := h.propertyService.Create(c.Context(), ownerID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": prop})
}

// CreateFeatured accepts an optional owner_id so admins can list on
// behalf of a home owner.
func (h *PropertyHandler) CreateFeatured(c *fiber.Ctx) error {
	var body struct {
		domain.CreatePropertyInput
		OwnerID *uuid.UUID `json:"owner_id,omitempty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	actor := middleware.GetCurrentUser(c)
	if actor == nil {
		return middleware.Unauthorized("User not found")
	}

	ownerID := actor.ID
	if body.OwnerID != nil {
		ownerID = *body.OwnerID
	}

	prop, err := h.propertyService.CreateFeatured(c.Context(), actor, ownerID, body.CreatePropertyInput)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": prop})
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	var input domain.UpdatePropertyInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	prop, err := h.propertyService.Update(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"property": prop})
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	if err := h.propertyService.Delete(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Property deleted",
	})
}
