package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/mocks"
	"kejani-backend/internal/service/notification"
)

type fixture struct {
	propertyRepo    *mocks.PropertyRepository
	applicationRepo *mocks.ApplicationRepository
	maintenanceRepo *mocks.MaintenanceRepository
	paymentRepo     *mocks.PaymentRepository
	reportRepo      *mocks.ReportRepository
	svc             notification.Service
}

func newFixture() *fixture {
	f := &fixture{
		propertyRepo:    new(mocks.PropertyRepository),
		applicationRepo: new(mocks.ApplicationRepository),
		maintenanceRepo: new(mocks.MaintenanceRepository),
		paymentRepo:     new(mocks.PaymentRepository),
		reportRepo:      new(mocks.ReportRepository),
	}
	f.svc = notification.NewService(f.propertyRepo, f.applicationRepo, f.maintenanceRepo, f.paymentRepo, f.reportRepo, time.Hour)
	return f
}

func (f *fixture) expectCounts(homeOwner, artisan, verifications, maintenance, payments, reports int64) {
	f.applicationRepo.On("CountPending", mock.Anything, domain.ApplicationHomeOwner).Return(homeOwner, nil)
	f.applicationRepo.On("CountPending", mock.Anything, domain.ApplicationArtisan).Return(artisan, nil)
	f.propertyRepo.On("CountPendingVerifications", mock.Anything).Return(verifications, nil)
	f.maintenanceRepo.On("CountOpen", mock.Anything).Return(maintenance, nil)
	f.paymentRepo.On("CountOutstanding", mock.Anything).Return(payments, nil)
	f.reportRepo.On("CountOpen", mock.Anything).Return(reports, nil)
}

func TestCounts_AllSourcesHealthy(t *testing.T) {
	f := newFixture()
	f.expectCounts(3, 1, 4, 2, 5, 0)

	counts, err := f.svc.Counts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), counts.HomeOwnerApplications)
	assert.Equal(t, int64(1), counts.ArtisanApplications)
	assert.Equal(t, int64(4), counts.PropertyVerifications)
	assert.Equal(t, int64(2), counts.MaintenanceRequests)
	assert.Equal(t, int64(5), counts.Payments)
	assert.Equal(t, int64(0), counts.Reports)
	assert.Equal(t, int64(15), counts.Total())
	assert.Empty(t, counts.Stale)
}

func TestCounts_PartialFailureRetainsPreviousValue(t *testing.T) {
	f := newFixture()

	// First pass: everything healthy, payments = 5.
	f.expectCounts(3, 1, 4, 2, 5, 0)
	_, err := f.svc.Counts(context.Background())
	assert.NoError(t, err)

	// Second pass: the payments source fails.
	f.paymentRepo.ExpectedCalls = nil
	f.paymentRepo.On("CountOutstanding", mock.Anything).Return(int64(0), errors.New("connection refused"))

	counts, err := f.svc.Counts(context.Background())

	assert.ErrorIs(t, err, domain.ErrCountersStale)
	var staleErr *domain.StaleCountersError
	assert.ErrorAs(t, err, &staleErr)
	assert.Equal(t, []string{domain.SourcePayments}, staleErr.Sources)

	// The stale counter keeps the last good value; the rest refreshed.
	assert.Equal(t, int64(5), counts.Payments)
	assert.Equal(t, []string{domain.SourcePayments}, counts.Stale)
	assert.Equal(t, int64(3), counts.HomeOwnerApplications)
}

func TestCounts_LatestReflectsLastPass(t *testing.T) {
	f := newFixture()
	f.expectCounts(1, 0, 0, 0, 0, 0)

	assert.Equal(t, int64(0), f.svc.Latest().Total())

	_, err := f.svc.Counts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), f.svc.Latest().HomeOwnerApplications)
}

func TestSubscribe_ObserverSeesRefreshAfterPoke(t *testing.T) {
	f := newFixture()
	f.expectCounts(0, 0, 1, 0, 0, 0)

	var mu sync.Mutex
	var received []domain.NotificationCounts
	unsubscribe := f.svc.Subscribe(func(c domain.NotificationCounts) {
		mu.Lock()
		received = append(received, c)
		mu.Unlock()
	})
	defer unsubscribe()

	// Initial refresh triggered by the first observer.
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) >= 1
	})

	// A write lands: the pending-verifications queue grows.
	f.propertyRepo.ExpectedCalls = nil
	f.propertyRepo.On("CountPendingVerifications", mock.Anything).Return(int64(2), nil)
	f.svc.Poke()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) >= 2 && received[len(received)-1].PropertyVerifications == 2
	})
}

func TestPoke_NoObserversIsNoOp(t *testing.T) {
	f := newFixture()

	f.svc.Poke()
	time.Sleep(50 * time.Millisecond)

	f.propertyRepo.AssertNotCalled(t, "CountPendingVerifications", mock.Anything)
}

func TestSubscribe_UnsubscribeIsIdempotent(t *testing.T) {
	f := newFixture()
	f.expectCounts(0, 0, 0, 0, 0, 0)

	unsubscribe := f.svc.Subscribe(func(domain.NotificationCounts) {})
	unsubscribe()
	assert.NotPanics(t, unsubscribe)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
