package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/mocks"
	"kejani-backend/internal/service/application"
)

type recordingNotifier struct {
	pokes chan struct{}
}

func (n *recordingNotifier) Poke() {
	n.pokes <- struct{}{}
}

func newService(t *testing.T) (application.Service, *mocks.ApplicationRepository, *mocks.EmailService, *recordingNotifier) {
	t.Helper()
	repo := new(mocks.ApplicationRepository)
	emailSvc := new(mocks.EmailService)
	notifier := &recordingNotifier{pokes: make(chan struct{}, 4)}

	svc := application.NewService(repo, emailSvc)
	svc.SetNotifier(notifier)
	return svc, repo, emailSvc, notifier
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateApplicationInput{
		Type:     domain.ApplicationHomeOwner,
		FullName: "Wanjiku Kamau",
		Email:    "wanjiku@example.com",
	}

	t.Run("Creates Pending And Pokes", func(t *testing.T) {
		svc, repo, emailSvc, notifier := newService(t)

		repo.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.Status == domain.ApplicationPending && a.Email == input.Email
		})).Return(nil).Once()
		emailSvc.On("SendApplicationReceived", mock.Anything, input.Email, input.FullName).Return(nil).Maybe()

		app, err := svc.Submit(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationPending, app.Status)
		<-notifier.pokes
		repo.AssertExpectations(t)
	})

	t.Run("Rejects Invalid Input", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		_, err := svc.Submit(ctx, domain.CreateApplicationInput{Type: "plumber"})

		assert.ErrorIs(t, err, domain.ErrInvalidEntity)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	reviewer := &domain.User{ID: uuid.New(), Role: "admin"}

	t.Run("Approve Pending", func(t *testing.T) {
		svc, repo, _, notifier := newService(t)
		app := &domain.Application{ID: uuid.New(), Status: domain.ApplicationPending}

		repo.On("GetByID", ctx, app.ID).Return(app, nil).Once()
		repo.On("SetStatus", ctx, app.ID, domain.ApplicationApproved, reviewer.ID).Return(nil).Once()

		assert.NoError(t, svc.Approve(ctx, reviewer, app.ID))
		<-notifier.pokes
		repo.AssertExpectations(t)
	})

	t.Run("Already Decided", func(t *testing.T) {
		svc, repo, _, _ := newService(t)
		app := &domain.Application{ID: uuid.New(), Status: domain.ApplicationApproved}

		repo.On("GetByID", ctx, app.ID).Return(app, nil).Once()

		err := svc.Reject(ctx, reviewer, app.ID)

		assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
		repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Agent Cannot Decide", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		agent := &domain.User{ID: uuid.New(), Role: "agent"}

		err := svc.Approve(ctx, agent, uuid.New())

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestListPending(t *testing.T) {
	ctx := context.Background()

	t.Run("Agent Allowed", func(t *testing.T) {
		svc, repo, _, _ := newService(t)
		agent := &domain.User{ID: uuid.New(), Role: "agent"}

		repo.On("ListPending", ctx, domain.ApplicationArtisan).Return([]domain.Application{}, nil).Once()

		_, err := svc.ListPending(ctx, agent, domain.ApplicationArtisan)
		assert.NoError(t, err)
	})

	t.Run("Home Owner Denied", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		owner := &domain.User{ID: uuid.New(), Role: "homeowner"}

		_, err := svc.ListPending(ctx, owner, domain.ApplicationHomeOwner)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
