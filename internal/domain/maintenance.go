package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "open"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceResolved   MaintenanceStatus = "resolved"
)

type MaintenanceRequest struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	PropertyID  uuid.UUID         `json:"property_id" db:"property_id"`
	ReportedBy  uuid.UUID         `json:"reported_by" db:"reported_by"`
	Title       string            `json:"title" db:"title"`
	Description string            `json:"description" db:"description"`
	Status      MaintenanceStatus `json:"status" db:"status"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

type CreateMaintenanceInput struct {
	PropertyID  uuid.UUID `json:"property_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func (in *CreateMaintenanceInput) Validate() error {
	if in.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: property_id is required", ErrInvalidEntity)
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEntity)
	}
	return nil
}
