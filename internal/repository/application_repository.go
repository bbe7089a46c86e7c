package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kejani-backend/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListPending(ctx context.Context, appType domain.ApplicationType) ([]domain.Application, error)
	CountPending(ctx context.Context, appType domain.ApplicationType) (int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, reviewerID uuid.UUID) error
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *domain.Application) error {
	query := `
		INSERT INTO applications (id, type, full_name, email, phone, trade, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		application.ID, application.Type, application.FullName, application.Email,
		application.Phone, application.Trade, application.Message, application.Status,
	).Scan(&application.CreatedAt, &application.UpdatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var application domain.Application
	err := r.db.GetContext(ctx, &application, `SELECT * FROM applications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) ListPending(ctx context.Context, appType domain.ApplicationType) ([]domain.Application, error) {
	query := `SELECT * FROM applications WHERE status = 'pending' AND type = $1 ORDER BY created_at ASC`

	var applications []domain.Application
	err := r.db.SelectContext(ctx, &applications, query, appType)
	return applications, err
}

func (r *applicationRepository) CountPending(ctx context.Context, appType domain.ApplicationType) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM applications WHERE status = 'pending' AND type = $1`, appType)
	return count, err
}

func (r *applicationRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, reviewerID uuid.UUID) error {
	query := `UPDATE applications SET status = $2, reviewed_by = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status, reviewerID)
	return err
}
