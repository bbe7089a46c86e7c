package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kejani-backend/internal/domain"
)

type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *domain.Media) error {
	query := `
		INSERT INTO media (id, property_id, uploaded_by, file_name, file_size, mime_type, storage_path, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		media.ID, media.PropertyID, media.UploadedBy, media.FileName,
		media.FileSize, media.MimeType, media.StoragePath, media.URL,
	).Scan(&media.CreatedAt)
}

func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	var media domain.Media
	err := r.db.GetContext(ctx, &media, `SELECT * FROM media WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Media, error) {
	query := `SELECT * FROM media WHERE property_id = $1 ORDER BY created_at ASC`

	var items []domain.Media
	err := r.db.SelectContext(ctx, &items, query, propertyID)
	return items, err
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	return err
}
