package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kejani-backend/internal/domain"
)

type PropertyRepository struct {
	mock.Mock
}

func (m *PropertyRepository) Create(ctx context.Context, property *domain.Property, contact *domain.OwnerContact) error {
	args := m.Called(ctx, property, contact)
	return args.Error(0)
}

func (m *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *PropertyRepository) GetOwnerContact(ctx context.Context, propertyID uuid.UUID) (*domain.OwnerContact, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerContact), args.Error(1)
}

func (m *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PropertyRepository) List(ctx context.Context, filter domain.PropertyFilter, pageSize int, cursor *domain.Cursor) ([]domain.Property, bool, error) {
	args := m.Called(ctx, filter, pageSize, cursor)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Property), args.Bool(1), args.Error(2)
}

func (m *PropertyRepository) Search(ctx context.Context, term string, filter domain.PropertyFilter, limit int) ([]domain.Property, error) {
	args := m.Called(ctx, term, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *PropertyRepository) Featured(ctx context.Context, limit int) ([]domain.Property, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *PropertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *PropertyRepository) PendingByRegion(ctx context.Context, region string) ([]domain.Property, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *PropertyRepository) CountPendingVerifications(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PropertyRepository) SetVerification(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, verifierID uuid.UUID, verifiedAt *time.Time) (bool, error) {
	args := m.Called(ctx, id, status, verifierID, verifiedAt)
	return args.Bool(0), args.Error(1)
}
