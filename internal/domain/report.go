package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportResolved ReportStatus = "resolved"
)

// Report is a user complaint about a listing or another user.
type Report struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	PropertyID *uuid.UUID   `json:"property_id,omitempty" db:"property_id"`
	ReporterID uuid.UUID    `json:"reporter_id" db:"reporter_id"`
	Reason     string       `json:"reason" db:"reason"`
	Details    *string      `json:"details,omitempty" db:"details"`
	Status     ReportStatus `json:"status" db:"status"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}

type CreateReportInput struct {
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	Reason     string     `json:"reason"`
	Details    *string    `json:"details,omitempty"`
}

func (in *CreateReportInput) Validate() error {
	if in.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidEntity)
	}
	return nil
}
