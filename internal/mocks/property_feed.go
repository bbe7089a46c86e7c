package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"kejani-backend/internal/domain"
)

type PropertyFeed struct {
	mock.Mock
}

func (m *PropertyFeed) Publish(ctx context.Context, change domain.PropertyChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *PropertyFeed) Subscribe(ctx context.Context) (<-chan domain.ChangeBatch, func(), error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var cancel func()
	if args.Get(1) != nil {
		cancel = args.Get(1).(func())
	}
	return args.Get(0).(<-chan domain.ChangeBatch), cancel, args.Error(2)
}

// InMemoryFeed is a deterministic feed for exercising the sync channel:
// published changes are delivered in order to every open subscriber.
type InMemoryFeed struct {
	mu     sync.Mutex
	subs   []chan domain.ChangeBatch
	closed bool
}

func NewInMemoryFeed() *InMemoryFeed {
	return &InMemoryFeed{}
}

func (f *InMemoryFeed) Publish(ctx context.Context, change domain.PropertyChange) error {
	f.PublishBatch(domain.ChangeBatch{Changes: []domain.PropertyChange{change}})
	return nil
}

func (f *InMemoryFeed) PublishBatch(batch domain.ChangeBatch) {
	f.mu.Lock()
	subs := make([]chan domain.ChangeBatch, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, ch := range subs {
		ch <- batch
	}
}

func (f *InMemoryFeed) Subscribe(ctx context.Context) (<-chan domain.ChangeBatch, func(), error) {
	ch := make(chan domain.ChangeBatch, 64)
	f.mu.Lock()
	f.subs = append(f.subs, ch)
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, sub := range f.subs {
			if sub == ch {
				f.subs = append(f.subs[:i], f.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel, nil
}

// Drop closes every subscriber channel without unregistering, simulating
// transport loss.
func (f *InMemoryFeed) Drop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		close(ch)
	}
	f.subs = nil
}
