// Package intake handles the operational write paths that feed the
// admin work queues: maintenance requests, rent payments and abuse
// reports.
package intake

import (
	"context"

	"github.com/google/uuid"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/repository"
)

type Notifier interface {
	Poke()
}

type Service interface {
	ReportMaintenance(ctx context.Context, actor *domain.User, input domain.CreateMaintenanceInput) (*domain.MaintenanceRequest, error)
	OpenMaintenance(ctx context.Context, actor *domain.User) ([]domain.MaintenanceRequest, error)
	SetMaintenanceStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.MaintenanceStatus) error

	RecordPayment(ctx context.Context, actor *domain.User, input domain.CreatePaymentInput) (*domain.Payment, error)
	OutstandingPayments(ctx context.Context, actor *domain.User) ([]domain.Payment, error)
	SetPaymentStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.PaymentStatus) error

	FileReport(ctx context.Context, actor *domain.User, input domain.CreateReportInput) (*domain.Report, error)
	OpenReports(ctx context.Context, actor *domain.User) ([]domain.Report, error)
	ResolveReport(ctx context.Context, actor *domain.User, id uuid.UUID) error

	SetNotifier(n Notifier)
}

type service struct {
	maintenanceRepo repository.MaintenanceRepository
	paymentRepo     repository.PaymentRepository
	reportRepo      repository.ReportRepository
	notifier        Notifier
}

func NewService(maintenanceRepo repository.MaintenanceRepository, paymentRepo repository.PaymentRepository, reportRepo repository.ReportRepository) Service {
	return &service{
		maintenanceRepo: maintenanceRepo,
		paymentRepo:     paymentRepo,
		reportRepo:      reportRepo,
	}
}

func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *service) ReportMaintenance(ctx context.Context, actor *domain.User, input domain.CreateMaintenanceInput) (*domain.MaintenanceRequest, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	request := &domain.MaintenanceRequest{
		ID:          uuid.New(),
		PropertyID:  input.PropertyID,
		ReportedBy:  actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.MaintenanceOpen,
	}
	if err := s.maintenanceRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	s.poke()
	return request, nil
}

func (s *service) OpenMaintenance(ctx context.Context, actor *domain.User) ([]domain.MaintenanceRequest, error) {
	if actor == nil || !actor.HasRole("agent") {
		return nil, domain.ErrUnauthorized
	}
	return s.maintenanceRepo.ListOpen(ctx)
}

func (s *service) SetMaintenanceStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.MaintenanceStatus) error {
	if actor == nil || !actor.HasRole("agent") {
		return domain.ErrUnauthorized
	}
	if err := s.maintenanceRepo.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.poke()
	return nil
}

func (s *service) RecordPayment(ctx context.Context, actor *domain.User, input domain.CreatePaymentInput) (*domain.Payment, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:         uuid.New(),
		PropertyID: input.PropertyID,
		PayerID:    actor.ID,
		Amount:     input.Amount,
		Reference:  input.Reference,
		Status:     domain.PaymentOutstanding,
		DueDate:    input.DueDate,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	s.poke()
	return payment, nil
}

func (s *service) OutstandingPayments(ctx context.Context, actor *domain.User) ([]domain.Payment, error) {
	if actor == nil || !actor.HasRole("agent") {
		return nil, domain.ErrUnauthorized
	}
	return s.paymentRepo.ListOutstanding(ctx)
}

func (s *service) SetPaymentStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.PaymentStatus) error {
	if actor == nil || !actor.HasRole("agent") {
		return domain.ErrUnauthorized
	}
	if err := s.paymentRepo.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.poke()
	return nil
}

func (s *service) FileReport(ctx context.Context, actor *domain.User, input domain.CreateReportInput) (*domain.Report, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:         uuid.New(),
		PropertyID: input.PropertyID,
		ReporterID: actor.ID,
		Reason:     input.Reason,
		Details:    input.Details,
		Status:     domain.ReportOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	s.poke()
	return report, nil
}

func (s *service) OpenReports(ctx context.Context, actor *domain.User) ([]domain.Report, error) {
	if actor == nil || !actor.HasRole("agent") {
		return nil, domain.ErrUnauthorized
	}
	return s.reportRepo.ListOpen(ctx)
}

func (s *service) ResolveReport(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if actor == nil || !actor.HasRole("agent") {
		return domain.ErrUnauthorized
	}
	if err := s.reportRepo.Resolve(ctx, id); err != nil {
		return err
	}
	s.poke()
	return nil
}

func (s *service) poke() {
	if s.notifier != nil {
		s.notifier.Poke()
	}
}
