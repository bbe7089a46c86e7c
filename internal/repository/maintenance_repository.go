package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kejani-backend/internal/domain"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, request *domain.MaintenanceRequest) error
	ListOpen(ctx context.Context) ([]domain.MaintenanceRequest, error)
	CountOpen(ctx context.Context) (int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.MaintenanceStatus) error
}

type maintenanceRepository struct {
	db *sqlx.DB
}

func NewMaintenanceRepository(db *sqlx.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, request *domain.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, property_id, reported_by, title, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		request.ID, request.PropertyID, request.ReportedBy, request.Title,
		request.Description, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
}

func (r *maintenanceRepository) ListOpen(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	query := `SELECT * FROM maintenance_requests WHERE status != 'resolved' ORDER BY created_at ASC`

	var requests []domain.MaintenanceRequest
	err := r.db.SelectContext(ctx, &requests, query)
	return requests, err
}

func (r *maintenanceRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM maintenance_requests WHERE status != 'resolved'`)
	return count, err
}

func (r *maintenanceRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.MaintenanceStatus) error {
	query := `UPDATE maintenance_requests SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
