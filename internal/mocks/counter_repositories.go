package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kejani-backend/internal/domain"
)

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Create(ctx context.Context, application *domain.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) ListPending(ctx context.Context, appType domain.ApplicationType) ([]domain.Application, error) {
	args := m.Called(ctx, appType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *ApplicationRepository) CountPending(ctx context.Context, appType domain.ApplicationType) (int64, error) {
	args := m.Called(ctx, appType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ApplicationRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, reviewerID uuid.UUID) error {
	args := m.Called(ctx, id, status, reviewerID)
	return args.Error(0)
}

type MaintenanceRepository struct {
	mock.Mock
}

func (m *MaintenanceRepository) Create(ctx context.Context, request *domain.MaintenanceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MaintenanceRepository) ListOpen(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MaintenanceRequest), args.Error(1)
}

func (m *MaintenanceRepository) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MaintenanceRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.MaintenanceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *PaymentRepository) ListOutstanding(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *PaymentRepository) CountOutstanding(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PaymentRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *ReportRepository) ListOpen(ctx context.Context) ([]domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *ReportRepository) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReportRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
