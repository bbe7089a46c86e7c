package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Counts always answers 200: counters that could not be refreshed are
// listed under "stale" and keep their previous values.
func (h *NotificationHandler) Counts(c *fiber.Ctx) error {
	counts, err := h.notificationService.Counts(c.Context())
	if err != nil && !errors.Is(err, domain.ErrCountersStale) {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"counts": counts,
		"total":  counts.Total(),
	})
}
