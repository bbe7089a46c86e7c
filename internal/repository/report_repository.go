package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kejani-backend/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	ListOpen(ctx context.Context) ([]domain.Report, error)
	CountOpen(ctx context.Context) (int64, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, property_id, reporter_id, reason, details, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.PropertyID, report.ReporterID, report.Reason,
		report.Details, report.Status,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) ListOpen(ctx context.Context) ([]domain.Report, error) {
	query := `SELECT * FROM reports WHERE status = 'open' ORDER BY created_at ASC`

	var reports []domain.Report
	err := r.db.SelectContext(ctx, &reports, query)
	return reports, err
}

func (r *reportRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reports WHERE status = 'open'`)
	return count, err
}

func (r *reportRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE reports SET status = 'resolved', updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
