// Package sync maintains live, filtered in-memory snapshots of the
// property collection for consumers that need continuous updates (map
// views, live admin queues) instead of one-shot pagination.
package sync

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/repository"
)

type Service interface {
	// Subscribe seeds a snapshot from the store, then reconciles feed
	// batches into it in arrival order. Changing the filter means
	// closing the returned subscription and opening a new one; Close
	// must run before the new Subscribe so two channels never deliver
	// into the same consumer.
	Subscribe(ctx context.Context, filter domain.PropertyFilter, onSnapshot func([]domain.Property)) (*Subscription, error)
}

type service struct {
	propertyRepo repository.PropertyRepository
	feed         repository.PropertyFeed
}

func NewService(propertyRepo repository.PropertyRepository, feed repository.PropertyFeed) Service {
	return &service{propertyRepo: propertyRepo, feed: feed}
}

// Subscription is a live view over the filtered collection. Snapshot,
// Loading and Err never block on the underlying transport.
type Subscription struct {
	filter     domain.PropertyFilter
	onSnapshot func([]domain.Property)

	mu      sync.Mutex
	items   []domain.Property
	loading bool
	lastErr error
	closed  bool

	cancel    func()
	closeOnce sync.Once
	done      chan struct{}
}

func (s *service) Subscribe(ctx context.Context, filter domain.PropertyFilter, onSnapshot func([]domain.Property)) (*Subscription, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// The feed opens before the seed query so no change published
	// during the seed can be missed; reconciliation makes replaying a
	// change already present in the seed harmless.
	batches, cancel, err := s.feed.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		filter:     filter,
		onSnapshot: onSnapshot,
		loading:    true,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	go sub.run(batches)
	go sub.seed(ctx, s.propertyRepo)

	return sub, nil
}

func (sub *Subscription) seed(ctx context.Context, repo repository.PropertyRepository) {
	var (
		all    []domain.Property
		cursor *domain.Cursor
	)
	for {
		page, hasMore, err := repo.List(ctx, sub.filter, domain.MaxPageSize, cursor)
		if err != nil {
			sub.mu.Lock()
			sub.loading = false
			sub.lastErr = err
			sub.mu.Unlock()
			return
		}
		all = append(all, page...)
		if !hasMore || len(page) == 0 {
			break
		}
		last := page[len(page)-1]
		cursor = &domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	// Feed events may already have landed; merge the seed under them
	// rather than overwriting.
	for _, p := range all {
		property := p
		if idx := indexOf(sub.items, property.ID); idx < 0 {
			sub.items = insertOrdered(sub.items, property)
		}
	}
	sub.loading = false
	sub.lastErr = nil
	snapshot := snapshotCopy(sub.items)
	cb := sub.onSnapshot
	sub.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// run applies batches strictly in arrival order. Reordering or
// coalescing could apply a stale modify after a later remove.
func (sub *Subscription) run(batches <-chan domain.ChangeBatch) {
	for {
		select {
		case <-sub.done:
			// Late results are discarded, not applied to a torn-down
			// consumer.
			return
		case batch, ok := <-batches:
			if !ok {
				// Transport loss: keep the last good snapshot, flag
				// the error until the consumer resubscribes.
				sub.mu.Lock()
				if !sub.closed {
					sub.lastErr = domain.ErrStoreUnavailable
				}
				sub.mu.Unlock()
				return
			}
			sub.apply(batch)
		}
	}
}

func (sub *Subscription) apply(batch domain.ChangeBatch) {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	for _, change := range batch.Changes {
		switch change.Type {
		case domain.ChangeRemoved:
			sub.items = removeByID(sub.items, change.PropertyID)
		case domain.ChangeAdded, domain.ChangeModified:
			if change.Property == nil {
				continue
			}
			property := *change.Property
			// An entity modified out of the filter's scope leaves the
			// snapshot like a removal.
			if !sub.filter.Matches(&property) {
				sub.items = removeByID(sub.items, property.ID)
				continue
			}
			if idx := indexOf(sub.items, property.ID); idx >= 0 {
				if sameSortKey(sub.items[idx], property) {
					sub.items[idx] = property
				} else {
					sub.items = removeByID(sub.items, property.ID)
					sub.items = insertOrdered(sub.items, property)
				}
			} else {
				sub.items = insertOrdered(sub.items, property)
			}
		}
	}
	sub.lastErr = nil
	snapshot := snapshotCopy(sub.items)
	cb := sub.onSnapshot
	sub.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the current reconciled collection.
func (sub *Subscription) Snapshot() []domain.Property {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return snapshotCopy(sub.items)
}

func (sub *Subscription) Loading() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.loading
}

func (sub *Subscription) Err() error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.lastErr
}

// Close tears the subscription down exactly once. Safe to call multiple
// times and from any goroutine.
func (sub *Subscription) Close() {
	sub.closeOnce.Do(func() {
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()
		close(sub.done)
		if sub.cancel != nil {
			sub.cancel()
		}
	})
}

// Snapshot ordering matches the listing order: created_at DESC, id DESC.
func before(a, b domain.Property) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func sameSortKey(a, b domain.Property) bool {
	return a.CreatedAt.Equal(b.CreatedAt) && a.ID == b.ID
}

func indexOf(items []domain.Property, id uuid.UUID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeByID(items []domain.Property, id uuid.UUID) []domain.Property {
	idx := indexOf(items, id)
	if idx < 0 {
		return items
	}
	return append(items[:idx], items[idx+1:]...)
}

func insertOrdered(items []domain.Property, p domain.Property) []domain.Property {
	pos := sort.Search(len(items), func(i int) bool {
		return before(p, items[i])
	})
	items = append(items, domain.Property{})
	copy(items[pos+1:], items[pos:])
	items[pos] = p
	return items
}

func snapshotCopy(items []domain.Property) []domain.Property {
	out := make([]domain.Property, len(items))
	copy(out, items)
	return out
}
