package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/service/auth"
)

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Stale   []string `json:"stale,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"
	var stale []string

	var fiberErr *fiber.Error
	var staleErr *domain.StaleCountersError
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		errorCode = codeName(code)
	case errors.Is(err, domain.ErrInvalidFilter):
		code, errorCode, message = fiber.StatusBadRequest, "INVALID_FILTER", err.Error()
	case errors.Is(err, domain.ErrInvalidEntity):
		code, errorCode, message = fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrPropertyNotFound), errors.Is(err, domain.ErrNotFound):
		code, errorCode, message = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		code, errorCode, message = fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrSelfVerification), errors.Is(err, domain.ErrAlreadyTerminal):
		code, errorCode, message = fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrStoreUnavailable):
		code, errorCode, message = fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", err.Error()
	case errors.As(err, &staleErr):
		// Partial aggregation results still travel with a 200 from the
		// handler; hitting this branch means the handler chose to fail.
		code, errorCode, message = fiber.StatusServiceUnavailable, "COUNTERS_STALE", err.Error()
		stale = staleErr.Sources
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		code, errorCode, message = fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, auth.ErrEmailExists):
		code, errorCode, message = fiber.StatusConflict, "CONFLICT", err.Error()
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		Stale:   stale,
		TraceID: traceID,
	})
}

func codeName(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
