package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentOutstanding PaymentStatus = "outstanding"
	PaymentPaid        PaymentStatus = "paid"
	PaymentFailed      PaymentStatus = "failed"
)

type Payment struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	PropertyID uuid.UUID     `json:"property_id" db:"property_id"`
	PayerID    uuid.UUID     `json:"payer_id" db:"payer_id"`
	Amount     float64       `json:"amount" db:"amount"`
	Reference  string        `json:"reference" db:"reference"`
	Status     PaymentStatus `json:"status" db:"status"`
	DueDate    *time.Time    `json:"due_date,omitempty" db:"due_date"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

type CreatePaymentInput struct {
	PropertyID uuid.UUID  `json:"property_id"`
	Amount     float64    `json:"amount"`
	Reference  string     `json:"reference"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

func (in *CreatePaymentInput) Validate() error {
	if in.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: property_id is required", ErrInvalidEntity)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidEntity)
	}
	return nil
}
