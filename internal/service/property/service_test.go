package property_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/mocks"
	"kejani-backend/internal/service/property"
)

type countingNotifier struct {
	pokes int64
}

func (n *countingNotifier) Poke() {
	atomic.AddInt64(&n.pokes, 1)
}

func (n *countingNotifier) count() int64 {
	return atomic.LoadInt64(&n.pokes)
}

type fixture struct {
	propertyRepo *mocks.PropertyRepository
	userRepo     *mocks.UserRepository
	auditRepo    *mocks.AuditLogRepository
	feed         *mocks.PropertyFeed
	email        *mocks.EmailService
	notifier     *countingNotifier
	svc          property.Service
}

func newFixture() *fixture {
	f := &fixture{
		propertyRepo: new(mocks.PropertyRepository),
		userRepo:     new(mocks.UserRepository),
		auditRepo:    new(mocks.AuditLogRepository),
		feed:         new(mocks.PropertyFeed),
		email:        new(mocks.EmailService),
		notifier:     new(countingNotifier),
	}
	f.svc = property.NewService(f.propertyRepo, f.userRepo, f.auditRepo, f.feed, nil, f.email)
	f.svc.SetNotifier(f.notifier)

	// Post-write side effects fire on most paths; the individual tests
	// assert on the interesting calls.
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.feed.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.email.On("SendVerificationDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func agent() *domain.User {
	return &domain.User{ID: uuid.New(), Role: "agent", FullName: "Agent Atieno"}
}

func admin() *domain.User {
	return &domain.User{ID: uuid.New(), Role: "admin", FullName: "Admin Abdi"}
}

func pendingProperty(ownerID uuid.UUID) *domain.Property {
	return &domain.Property{
		ID:                 uuid.New(),
		Title:              "Two-Bedroom in Kilimani",
		Location:           "Kilimani, Nairobi",
		Price:              42000,
		PropertyType:       domain.TypeApartment,
		Bedrooms:           2,
		Area:               78,
		HomeOwnerID:        ownerID,
		Availability:       domain.Available,
		VerificationStatus: domain.StatusPending,
		CreatedAt:          time.Now().UTC().Add(-time.Hour),
	}
}

func TestService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending Becomes Verified", func(t *testing.T) {
		f := newFixture()
		actor := agent()
		prop := pendingProperty(uuid.New())

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()
		f.propertyRepo.On("SetVerification", ctx, prop.ID, domain.StatusVerified, actor.ID, mock.Anything).Return(true, nil).Once()

		verified, err := f.svc.Verify(ctx, actor, prop.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusVerified, verified.VerificationStatus)
		assert.True(t, verified.IsVerified)
		assert.Equal(t, actor.ID, *verified.VerifiedBy)
		assert.NotNil(t, verified.VerificationDate)
		assert.Equal(t, int64(1), f.notifier.count())
		f.propertyRepo.AssertExpectations(t)
	})

	t.Run("Rejected Clears Verified Flag", func(t *testing.T) {
		f := newFixture()
		actor := agent()
		prop := pendingProperty(uuid.New())

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()
		f.propertyRepo.On("SetVerification", ctx, prop.ID, domain.StatusRejected, actor.ID, (*time.Time)(nil)).Return(true, nil).Once()

		rejected, err := f.svc.Reject(ctx, actor, prop.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, rejected.VerificationStatus)
		assert.False(t, rejected.IsVerified)
		assert.Nil(t, rejected.VerificationDate)
	})

	t.Run("Terminal State Unchanged", func(t *testing.T) {
		f := newFixture()
		actor := agent()
		prop := pendingProperty(uuid.New())
		prop.VerificationStatus = domain.StatusRejected

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()

		_, err := f.svc.Verify(ctx, actor, prop.ID)

		assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
		f.propertyRepo.AssertNotCalled(t, "SetVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, int64(0), f.notifier.count())
	})

	t.Run("Lost Race Surfaces As Terminal", func(t *testing.T) {
		f := newFixture()
		actor := agent()
		prop := pendingProperty(uuid.New())
		settled := *prop
		settled.VerificationStatus = domain.StatusVerified

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()
		f.propertyRepo.On("SetVerification", ctx, prop.ID, domain.StatusRejected, actor.ID, (*time.Time)(nil)).Return(false, nil).Once()
		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(&settled, nil).Once()

		_, err := f.svc.Reject(ctx, actor, prop.ID)

		assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
	})

	t.Run("Owner Cannot Verify Own Listing", func(t *testing.T) {
		f := newFixture()
		actor := agent()
		prop := pendingProperty(actor.ID)

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()

		_, err := f.svc.Verify(ctx, actor, prop.ID)

		assert.ErrorIs(t, err, domain.ErrSelfVerification)
	})

	t.Run("Home Owner Role Denied", func(t *testing.T) {
		f := newFixture()
		actor := &domain.User{ID: uuid.New(), Role: "homeowner"}

		_, err := f.svc.Verify(ctx, actor, uuid.New())

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		f.propertyRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	input := domain.CreatePropertyInput{
		Title:        "Garden Cottage",
		Location:     "Westlands",
		Price:        30000,
		PropertyType: domain.TypeHouse,
		Bedrooms:     1,
		Area:         55,
	}

	t.Run("New Listing Starts Pending", func(t *testing.T) {
		f := newFixture()
		ownerID := uuid.New()

		f.propertyRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Property) bool {
			return p.VerificationStatus == domain.StatusPending && !p.IsVerified && p.HomeOwnerID == ownerID
		}), (*domain.OwnerContact)(nil)).Return(nil).Once()
		f.feed.On("Publish", ctx, mock.MatchedBy(func(c domain.PropertyChange) bool {
			return c.Type == domain.ChangeAdded
		})).Return(nil).Once()

		created, err := f.svc.Create(ctx, ownerID, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.Available, created.Availability)
		assert.Equal(t, int64(1), f.notifier.count())
		f.propertyRepo.AssertExpectations(t)
	})

	t.Run("Invalid Input Rejected", func(t *testing.T) {
		f := newFixture()
		bad := input
		bad.Title = ""

		_, err := f.svc.Create(ctx, uuid.New(), bad)

		assert.ErrorIs(t, err, domain.ErrInvalidEntity)
		f.propertyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Featured Requires Distinct Owner", func(t *testing.T) {
		f := newFixture()
		actor := admin()

		_, err := f.svc.CreateFeatured(ctx, actor, actor.ID, input)

		assert.ErrorIs(t, err, domain.ErrSelfVerification)
	})

	t.Run("Featured Is Verified On Arrival", func(t *testing.T) {
		f := newFixture()
		actor := admin()
		ownerID := uuid.New()

		f.propertyRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Property) bool {
			return p.VerificationStatus == domain.StatusVerified && p.IsVerified &&
				p.VerifiedBy != nil && *p.VerifiedBy == actor.ID && p.VerificationDate != nil
		}), (*domain.OwnerContact)(nil)).Return(nil).Once()

		created, err := f.svc.CreateFeatured(ctx, actor, ownerID, input)

		assert.NoError(t, err)
		assert.True(t, created.IsVerified)
		f.propertyRepo.AssertExpectations(t)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	newTitle := "Renovated Garden Cottage"

	t.Run("Owner Patch Applied", func(t *testing.T) {
		f := newFixture()
		ownerID := uuid.New()
		prop := pendingProperty(ownerID)
		actor := &domain.User{ID: ownerID, Role: "homeowner"}

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()
		f.propertyRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Property) bool {
			return p.Title == newTitle
		})).Return(nil).Once()

		updated, err := f.svc.Update(ctx, actor, prop.ID, domain.UpdatePropertyInput{Title: &newTitle})

		assert.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("No-Op Patch Skips Write", func(t *testing.T) {
		f := newFixture()
		ownerID := uuid.New()
		prop := pendingProperty(ownerID)
		actor := &domain.User{ID: ownerID, Role: "homeowner"}

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()

		_, err := f.svc.Update(ctx, actor, prop.ID, domain.UpdatePropertyInput{})

		assert.NoError(t, err)
		f.propertyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Stranger Denied", func(t *testing.T) {
		f := newFixture()
		prop := pendingProperty(uuid.New())
		actor := &domain.User{ID: uuid.New(), Role: "homeowner"}

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()

		_, err := f.svc.Update(ctx, actor, prop.ID, domain.UpdatePropertyInput{Title: &newTitle})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Removal Publishes Removed Change", func(t *testing.T) {
		f := newFixture()
		ownerID := uuid.New()
		prop := pendingProperty(ownerID)
		actor := &domain.User{ID: ownerID, Role: "homeowner"}

		f.propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()
		f.propertyRepo.On("Delete", ctx, prop.ID).Return(nil).Once()
		f.feed.On("Publish", ctx, mock.MatchedBy(func(c domain.PropertyChange) bool {
			return c.Type == domain.ChangeRemoved && c.PropertyID == prop.ID
		})).Return(nil).Once()

		err := f.svc.Delete(ctx, actor, prop.ID)

		assert.NoError(t, err)
		f.feed.AssertExpectations(t)
	})

	t.Run("Missing Listing", func(t *testing.T) {
		f := newFixture()

		id := uuid.New()
		f.propertyRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := f.svc.Delete(ctx, admin(), id)

		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	})
}

func TestService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID Not Found", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.propertyRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	})

	t.Run("List Rejects Malformed Cursor", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.List(ctx, domain.PropertyFilter{}, 20, "not a cursor !!!")

		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
		f.propertyRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("List Emits Next Cursor", func(t *testing.T) {
		f := newFixture()
		items := []domain.Property{*pendingProperty(uuid.New()), *pendingProperty(uuid.New())}

		f.propertyRepo.On("List", ctx, mock.Anything, 2, (*domain.Cursor)(nil)).Return(items, true, nil).Once()

		page, err := f.svc.List(ctx, domain.PropertyFilter{}, 2, "")

		assert.NoError(t, err)
		assert.True(t, page.HasMore)
		assert.NotNil(t, page.NextCursor)

		decoded, err := domain.DecodeCursor(*page.NextCursor)
		assert.NoError(t, err)
		assert.Equal(t, items[1].ID, decoded.ID)
	})

	t.Run("Owner Contact Requires Agent", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetOwnerContact(ctx, &domain.User{ID: uuid.New(), Role: "homeowner"}, uuid.New())

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
