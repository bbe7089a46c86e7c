package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kejani-backend/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListOutstanding(ctx context.Context) ([]domain.Payment, error)
	CountOutstanding(ctx context.Context) (int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error
}

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, property_id, payer_id, amount, reference, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		payment.ID, payment.PropertyID, payment.PayerID, payment.Amount,
		payment.Reference, payment.Status, payment.DueDate,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) ListOutstanding(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT * FROM payments WHERE status = 'outstanding' ORDER BY due_date ASC NULLS LAST`

	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments, query)
	return payments, err
}

func (r *paymentRepository) CountOutstanding(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM payments WHERE status = 'outstanding'`)
	return count, err
}

func (r *paymentRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
