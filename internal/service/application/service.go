package application

import (
	"context"
	"log"

	"github.com/google/uuid"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/repository"
	"kejani-backend/internal/service/email"
)

// Notifier is poked after writes that change a pending-application count.
type Notifier interface {
	Poke()
}

type Service interface {
	Submit(ctx context.Context, input domain.CreateApplicationInput) (*domain.Application, error)
	ListPending(ctx context.Context, actor *domain.User, appType domain.ApplicationType) ([]domain.Application, error)
	Approve(ctx context.Context, actor *domain.User, id uuid.UUID) error
	Reject(ctx context.Context, actor *domain.User, id uuid.UUID) error
	SetNotifier(n Notifier)
}

type service struct {
	applicationRepo repository.ApplicationRepository
	emailSvc        email.Service
	notifier        Notifier
}

func NewService(applicationRepo repository.ApplicationRepository, emailSvc email.Service) Service {
	return &service{
		applicationRepo: applicationRepo,
		emailSvc:        emailSvc,
	}
}

func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *service) Submit(ctx context.Context, input domain.CreateApplicationInput) (*domain.Application, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	application := &domain.Application{
		ID:       uuid.New(),
		Type:     input.Type,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Trade:    input.Trade,
		Message:  input.Message,
		Status:   domain.ApplicationPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendApplicationReceived(context.Background(), application.Email, application.FullName); err != nil {
				log.Printf("application service: confirmation email failed: %v", err)
			}
		}()
	}
	s.poke()

	return application, nil
}

func (s *service) ListPending(ctx context.Context, actor *domain.User, appType domain.ApplicationType) ([]domain.Application, error) {
	if actor == nil || !actor.HasRole("agent") {
		return nil, domain.ErrUnauthorized
	}
	if !appType.IsValid() {
		return nil, domain.ErrInvalidEntity
	}
	return s.applicationRepo.ListPending(ctx, appType)
}

func (s *service) Approve(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	return s.decide(ctx, actor, id, domain.ApplicationApproved)
}

func (s *service) Reject(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	return s.decide(ctx, actor, id, domain.ApplicationRejected)
}

func (s *service) decide(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.ApplicationStatus) error {
	if actor == nil || !actor.HasRole("admin") {
		return domain.ErrUnauthorized
	}

	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if application == nil {
		return domain.ErrNotFound
	}
	if application.Status != domain.ApplicationPending {
		return domain.ErrAlreadyTerminal
	}

	if err := s.applicationRepo.SetStatus(ctx, id, status, actor.ID); err != nil {
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
