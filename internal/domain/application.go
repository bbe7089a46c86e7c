package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ApplicationType string

const (
	ApplicationHomeOwner ApplicationType = "home_owner"
	ApplicationArtisan   ApplicationType = "artisan"
)

func (t ApplicationType) IsValid() bool {
	return t == ApplicationHomeOwner || t == ApplicationArtisan
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a request to join the platform as a home owner or an
// artisan. Pending applications feed the navigation badge counts.
type Application struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	Type       ApplicationType   `json:"type" db:"type"`
	FullName   string            `json:"full_name" db:"full_name"`
	Email      string            `json:"email" db:"email"`
	Phone      *string           `json:"phone,omitempty" db:"phone"`
	Trade      *string           `json:"trade,omitempty" db:"trade"`
	Message    *string           `json:"message,omitempty" db:"message"`
	Status     ApplicationStatus `json:"status" db:"status"`
	ReviewedBy *uuid.UUID        `json:"reviewed_by,omitempty" db:"reviewed_by"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`
}

type CreateApplicationInput struct {
	Type     ApplicationType `json:"type"`
	FullName string          `json:"full_name"`
	Email    string          `json:"email"`
	Phone    *string         `json:"phone,omitempty"`
	Trade    *string         `json:"trade,omitempty"`
	Message  *string         `json:"message,omitempty"`
}

func (in *CreateApplicationInput) Validate() error {
	if !in.Type.IsValid() {
		return fmt.Errorf("%w: unknown application type %q", ErrInvalidEntity, in.Type)
	}
	if in.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidEntity)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidEntity)
	}
	return nil
}
