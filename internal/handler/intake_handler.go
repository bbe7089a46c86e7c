package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/middleware"
	"kejani-backend/internal/service/intake"
)

type IntakeHandler struct {
	intakeService intake.Service
}

func NewIntakeHandler(intakeService intake.Service) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

func (h *IntakeHandler) ReportMaintenance(c *fiber.Ctx) error {
	var input domain.CreateMaintenanceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	request, err := h.intakeService.ReportMaintenance(c.Context(), middleware.GetCurrentUser(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": request})
}

func (h *IntakeHandler) OpenMaintenance(c *fiber.Ctx) error {
	requests, err := h.intakeService.OpenMaintenance(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"requests": requests,
		"count":    len(requests),
	})
}

func (h *IntakeHandler) SetMaintenanceStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input struct {
		Status domain.MaintenanceStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.intakeService.SetMaintenanceStatus(c.Context(), middleware.GetCurrentUser(c), id, input.Status); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Maintenance request updated",
	})
}

func (h *IntakeHandler) RecordPayment(c *fiber.Ctx) error {
	var input domain.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	payment, err := h.intakeService.RecordPayment(c.Context(), middleware.GetCurrentUser(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

func (h *IntakeHandler) OutstandingPayments(c *fiber.Ctx) error {
	payments, err := h.intakeService.OutstandingPayments(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

func (h *IntakeHandler) SetPaymentStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid payment ID")
	}

	var input struct {
		Status domain.PaymentStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.intakeService.SetPaymentStatus(c.Context(), middleware.GetCurrentUser(c), id, input.Status); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Payment updated",
	})
}

func (h *IntakeHandler) FileReport(c *fiber.Ctx) error {
	var input domain.CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	report, err := h.intakeService.FileReport(c.Context(), middleware.GetCurrentUser(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": report})
}

func (h *IntakeHandler) OpenReports(c *fiber.Ctx) error {
	reports, err := h.intakeService.OpenReports(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reports": reports,
		"count":   len(reports),
	})
}

func (h *IntakeHandler) ResolveReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid report ID")
	}

	if err := h.intakeService.ResolveReport(c.Context(), middleware.GetCurrentUser(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Report resolved",
	})
}
