package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/mocks"
	syncsvc "kejani-backend/internal/service/sync"
)

func seededProperty(title string, createdAt time.Time) domain.Property {
	return domain.Property{
		ID:                 uuid.New(),
		Title:              title,
		Location:           "Nairobi",
		Price:              25000,
		PropertyType:       domain.TypeApartment,
		Bedrooms:           2,
		Area:               60,
		HomeOwnerID:        uuid.New(),
		Availability:       domain.Available,
		VerificationStatus: domain.StatusVerified,
		IsVerified:         true,
		CreatedAt:          createdAt,
	}
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

func titles(items []domain.Property) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Title
	}
	return out
}

func TestSubscribe_SeedThenReconcile(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	feed := mocks.NewInMemoryFeed()
	svc := syncsvc.NewService(repo, feed)

	now := time.Now().UTC()
	a := seededProperty("A", now)
	b := seededProperty("B", now.Add(-time.Minute))
	c := seededProperty("C", now.Add(-2*time.Minute))

	repo.On("List", mock.Anything, mock.Anything, domain.MaxPageSize, (*domain.Cursor)(nil)).
		Return([]domain.Property{a, b, c}, false, nil).Once()

	sub, err := svc.Subscribe(context.Background(), domain.PropertyFilter{}, nil)
	assert.NoError(t, err)
	defer sub.Close()

	waitFor(t, func() bool { return !sub.Loading() })
	assert.Equal(t, []string{"A", "B", "C"}, titles(sub.Snapshot()))

	// One batch: modify B, remove C, add D.
	modified := b
	modified.Title = "B-prime"
	d := seededProperty("D", now.Add(time.Minute))
	feed.PublishBatch(domain.ChangeBatch{Changes: []domain.PropertyChange{
		{Type: domain.ChangeModified, PropertyID: modified.ID, Property: &modified},
		{Type: domain.ChangeRemoved, PropertyID: c.ID},
		{Type: domain.ChangeAdded, PropertyID: d.ID, Property: &d},
	}})

	waitFor(t, func() bool { return len(sub.Snapshot()) == 3 })
	assert.Equal(t, []string{"D", "A", "B-prime"}, titles(sub.Snapshot()))
	assert.NoError(t, sub.Err())
}

func TestSubscribe_ModifiedOutOfScopeLeavesSnapshot(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	feed := mocks.NewInMemoryFeed()
	svc := syncsvc.NewService(repo, feed)

	now := time.Now().UTC()
	a := seededProperty("A", now)

	repo.On("List", mock.Anything, mock.Anything, domain.MaxPageSize, (*domain.Cursor)(nil)).
		Return([]domain.Property{a}, false, nil).Once()

	sub, err := svc.Subscribe(context.Background(), domain.PropertyFilter{VerifiedOnly: true}, nil)
	assert.NoError(t, err)
	defer sub.Close()

	waitFor(t, func() bool { return !sub.Loading() })
	assert.Len(t, sub.Snapshot(), 1)

	// Rejection drops the verified flag; the entity must leave the view.
	rejected := a
	rejected.IsVerified = false
	rejected.VerificationStatus = domain.StatusRejected
	_ = feed.Publish(context.Background(), domain.PropertyChange{
		Type: domain.ChangeModified, PropertyID: rejected.ID, Property: &rejected,
	})

	waitFor(t, func() bool { return len(sub.Snapshot()) == 0 })
}

func TestSubscribe_BatchesApplyInOrder(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	feed := mocks.NewInMemoryFeed()
	svc := syncsvc.NewService(repo, feed)

	repo.On("List", mock.Anything, mock.Anything, domain.MaxPageSize, (*domain.Cursor)(nil)).
		Return([]domain.Property{}, false, nil).Once()

	sub, err := svc.Subscribe(context.Background(), domain.PropertyFilter{}, nil)
	assert.NoError(t, err)
	defer sub.Close()

	waitFor(t, func() bool { return !sub.Loading() })

	p := seededProperty("P", time.Now().UTC())
	renamed := p
	renamed.Title = "P-renamed"

	_ = feed.Publish(context.Background(), domain.PropertyChange{Type: domain.ChangeAdded, PropertyID: p.ID, Property: &p})
	waitFor(t, func() bool {
		snap := sub.Snapshot()
		return len(snap) == 1 && snap[0].Title == "P"
	})

	_ = feed.Publish(context.Background(), domain.PropertyChange{Type: domain.ChangeModified, PropertyID: renamed.ID, Property: &renamed})
	waitFor(t, func() bool {
		snap := sub.Snapshot()
		return len(snap) == 1 && snap[0].Title == "P-renamed"
	})

	_ = feed.Publish(context.Background(), domain.PropertyChange{Type: domain.ChangeRemoved, PropertyID: p.ID})
	waitFor(t, func() bool { return len(sub.Snapshot()) == 0 })
}

func TestSubscribe_TransportLossKeepsSnapshot(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	feed := mocks.NewInMemoryFeed()
	svc := syncsvc.NewService(repo, feed)

	a := seededProperty("A", time.Now().UTC())
	repo.On("List", mock.Anything, mock.Anything, domain.MaxPageSize, (*domain.Cursor)(nil)).
		Return([]domain.Property{a}, false, nil).Once()

	sub, err := svc.Subscribe(context.Background(), domain.PropertyFilter{}, nil)
	assert.NoError(t, err)
	defer sub.Close()

	waitFor(t, func() bool { return !sub.Loading() })

	feed.Drop()

	waitFor(t, func() bool { return sub.Err() != nil })
	assert.ErrorIs(t, sub.Err(), domain.ErrStoreUnavailable)
	assert.Equal(t, []string{"A"}, titles(sub.Snapshot()))
}

func TestSubscribe_SnapshotCallback(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	feed := mocks.NewInMemoryFeed()
	svc := syncsvc.NewService(repo, feed)

	a := seededProperty("A", time.Now().UTC())
	repo.On("List", mock.Anything, mock.Anything, domain.MaxPageSize, (*domain.Cursor)(nil)).
		Return([]domain.Property{a}, false, nil).Once()

	snapshots := make(chan []domain.Property, 8)
	sub, err := svc.Subscribe(context.Background(), domain.PropertyFilter{}, func(items []domain.Property) {
		snapshots <- items
	})
	assert.NoError(t, err)
	defer sub.Close()

	select {
	case snap := <-snapshots:
		assert.Equal(t, []string{"A"}, titles(snap))
	case <-time.After(2 * time.Second):
		t.Fatal("no seed snapshot delivered")
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	feed := mocks.NewInMemoryFeed()
	svc := syncsvc.NewService(repo, feed)

	repo.On("List", mock.Anything, mock.Anything, domain.MaxPageSize, (*domain.Cursor)(nil)).
		Return([]domain.Property{}, false, nil).Once()

	sub, err := svc.Subscribe(context.Background(), domain.PropertyFilter{}, nil)
	assert.NoError(t, err)

	sub.Close()
	assert.NotPanics(t, sub.Close)
}

func TestSubscribe_InvalidFilter(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	feed := mocks.NewInMemoryFeed()
	svc := syncsvc.NewService(repo, feed)

	_, err := svc.Subscribe(context.Background(), domain.PropertyFilter{PriceRange: "bogus"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
