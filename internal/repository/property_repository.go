package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kejani-backend/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property, contact *domain.OwnerContact) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	GetOwnerContact(ctx context.Context, propertyID uuid.UUID) (*domain.OwnerContact, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.PropertyFilter, pageSize int, cursor *domain.Cursor) ([]domain.Property, bool, error)
	Search(ctx context.Context, term string, filter domain.PropertyFilter, limit int) ([]domain.Property, error)
	Featured(ctx context.Context, limit int) ([]domain.Property, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error)
	PendingByRegion(ctx context.Context, region string) ([]domain.Property, error)
	CountPendingVerifications(ctx context.Context) (int64, error)
	SetVerification(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, verifierID uuid.UUID, verifiedAt *time.Time) (bool, error)
}

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property, contact *domain.OwnerContact) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO properties (id, title, description, location, region, town,
			price, property_type, bedrooms, bathrooms, area, stay_duration,
			features, images, home_owner_id, availability,
			verification_status, is_verified, verified_by, verification_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		property.ID, property.Title, property.Description, property.Location,
		property.Region, property.Town, property.Price, property.PropertyType,
		property.Bedrooms, property.Bathrooms, property.Area, property.StayDuration,
		property.Features, property.Images, property.HomeOwnerID, property.Availability,
		property.VerificationStatus, property.IsVerified, property.VerifiedBy, property.VerificationDate,
	).Scan(&property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return err
	}

	if contact != nil {
		contact.PropertyID = property.ID
		contactQuery := `
			INSERT INTO owner_contacts (property_id, full_name, phone, email, id_type, id_number, address)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.ExecContext(ctx, contactQuery,
			contact.PropertyID, contact.FullName, contact.Phone, contact.Email,
			contact.IDType, contact.IDNumber, contact.Address,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	var property domain.Property
	query := `SELECT * FROM properties WHERE id = $1`

	err := r.db.GetContext(ctx, &property, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) GetOwnerContact(ctx context.Context, propertyID uuid.UUID) (*domain.OwnerContact, error) {
	var contact domain.OwnerContact
	query := `SELECT * FROM owner_contacts WHERE property_id = $1`

	err := r.db.GetContext(ctx, &contact, query, propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `
		UPDATE properties
		SET title = $2, description = $3, location = $4, region = $5, town = $6,
			price = $7, property_type = $8, bedrooms = $9, bathrooms = $10,
			area = $11, stay_duration = $12, features = $13, images = $14,
			availability = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		property.ID, property.Title, property.Description, property.Location,
		property.Region, property.Town, property.Price, property.PropertyType,
		property.Bedrooms, property.Bathrooms, property.Area, property.StayDuration,
		property.Features, property.Images, property.Availability,
	).Scan(&property.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrPropertyNotFound
	}
	return err
}

func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// filterClauses translates the filter into WHERE fragments. The filter
// must already be validated; an unparseable price bucket here is a
// programming error, not user input.
func filterClauses(filter domain.PropertyFilter, args []interface{}) ([]string, []interface{}) {
	var conds []string

	if filter.Location != "" {
		args = append(args, filter.Location)
		conds = append(conds, fmt.Sprintf("location ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Region != "" {
		args = append(args, filter.Region)
		conds = append(conds, fmt.Sprintf("region ILIKE $%d", len(args)))
	}
	if filter.PropertyType != nil {
		args = append(args, *filter.PropertyType)
		conds = append(conds, fmt.Sprintf("property_type = $%d", len(args)))
	}
	if lo, hi, err := filter.PriceBounds(); err == nil {
		if lo != nil {
			args = append(args, *lo)
			conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
		}
		if hi != nil {
			args = append(args, *hi)
			conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
		}
	}
	if filter.MinBedrooms > 0 {
		args = append(args, filter.MinBedrooms)
		conds = append(conds, fmt.Sprintf("bedrooms >= $%d", len(args)))
	}
	if filter.StayDuration != "" {
		args = append(args, filter.StayDuration)
		conds = append(conds, fmt.Sprintf("stay_duration ILIKE $%d", len(args)))
	}
	if filter.VerifiedOnly {
		conds = append(conds, "is_verified = TRUE")
	}
	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		conds = append(conds, fmt.Sprintf("availability = $%d", len(args)))
	}

	return conds, args
}

// List returns one keyset page ordered by (created_at DESC, id DESC).
// Concurrent inserts ahead of the cursor can still surface on later
// pages; the cursor only guarantees no overlap with rows already seen.
func (r *propertyRepository) List(ctx context.Context, filter domain.PropertyFilter, pageSize int, cursor *domain.Cursor) ([]domain.Property, bool, error) {
	conds, args := filterClauses(filter, nil)

	if cursor != nil {
		args = append(args, cursor.CreatedAt)
		tsArg := len(args)
		args = append(args, cursor.ID)
		conds = append(conds, fmt.Sprintf("(created_at, id) < ($%d, $%d)", tsArg, len(args)))
	}

	query := `SELECT * FROM properties`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, pageSize+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	var properties []domain.Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, false, err
	}

	hasMore := len(properties) > pageSize
	if hasMore {
		properties = properties[:pageSize]
	}
	return properties, hasMore, nil
}

func (r *propertyRepository) Search(ctx context.Context, term string, filter domain.PropertyFilter, limit int) ([]domain.Property, error) {
	conds, args := filterClauses(filter, nil)

	args = append(args, term)
	n := len(args)
	conds = append(conds, fmt.Sprintf(
		"(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%' OR location ILIKE '%%' || $%d || '%%')",
		n, n, n))

	args = append(args, limit)
	query := "SELECT * FROM properties WHERE " + strings.Join(conds, " AND ") +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties, query, args...)
	return properties, err
}

func (r *propertyRepository) Featured(ctx context.Context, limit int) ([]domain.Property, error) {
	query := `
		SELECT * FROM properties
		WHERE is_verified = TRUE AND availability = 'available'
		ORDER BY verification_date DESC NULLS LAST, created_at DESC
		LIMIT $1`

	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties, query, limit)
	return properties, err
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error) {
	query := `SELECT * FROM properties WHERE home_owner_id = $1 ORDER BY created_at DESC, id DESC`

	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties, query, ownerID)
	return properties, err
}

// PendingByRegion is the verification-request view: pending submissions
// whose location mentions the verifier's region.
func (r *propertyRepository) PendingByRegion(ctx context.Context, region string) ([]domain.Property, error) {
	query := `
		SELECT * FROM properties
		WHERE verification_status = 'pending'
			AND (location ILIKE '%' || $1 || '%' OR region ILIKE $1)
		ORDER BY created_at ASC`

	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties, query, region)
	return properties, err
}

func (r *propertyRepository) CountPendingVerifications(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM properties WHERE verification_status = 'pending'`)
	return count, err
}

// SetVerification performs the conditional transition out of pending.
// It reports false without error when no pending row matched, letting
// the service distinguish NotFound from AlreadyTerminal by re-reading.
func (r *propertyRepository) SetVerification(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, verifierID uuid.UUID, verifiedAt *time.Time) (bool, error) {
	query := `
		UPDATE properties
		SET verification_status = $2, is_verified = $3, verified_by = $4,
			verification_date = $5, updated_at = NOW()
		WHERE id = $1 AND verification_status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id, status, status == domain.StatusVerified, verifierID, verifiedAt)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
