package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kejani-backend/internal/middleware"
	"kejani-backend/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file")
	}

	var propertyID *uuid.UUID
	if raw := c.FormValue("property_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid property ID")
		}
		propertyID = &parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Cannot read file")
	}
	defer file.Close()

	uploaded, err := h.mediaService.Upload(
		c.Context(),
		middleware.GetCurrentUserID(c),
		propertyID,
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"media": uploaded})
}

func (h *MediaHandler) ListByProperty(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	items, err := h.mediaService.ListByProperty(c.Context(), propertyID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"media": items,
		"count": len(items),
	})
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid media ID")
	}

	if err := h.mediaService.Delete(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Media deleted",
	})
}
