// Package notification folds the pending/open counts of several
// independent collections into the single badge-counts object consumed
// by navigation.
package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/repository"
)

type Service interface {
	// Counts recomputes every counter on demand. A partial failure
	// returns the counts anyway with the failed sources marked stale
	// and a *domain.StaleCountersError describing them.
	Counts(ctx context.Context) (domain.NotificationCounts, error)
	// Latest returns the last computed counts without touching the
	// store.
	Latest() domain.NotificationCounts
	// Subscribe registers an observer and returns its unsubscribe
	// handle. The first observer triggers a refresh if none is in
	// flight; removing the last observer stops scheduled refreshes but
	// not one already underway.
	Subscribe(fn func(domain.NotificationCounts)) (unsubscribe func())
	// Poke asks for an asynchronous recompute after a write that may
	// have changed a count. It is a no-op with no observers.
	Poke()
}

type counterSource struct {
	name  string
	fetch func(ctx context.Context) (int64, error)
	set   func(c *domain.NotificationCounts, v int64)
	get   func(c domain.NotificationCounts) int64
}

type service struct {
	sources  []counterSource
	interval time.Duration

	mu          sync.Mutex
	latest      domain.NotificationCounts
	subscribers map[int]func(domain.NotificationCounts)
	nextID      int
	refreshing  bool
	stopTicker  chan struct{}
}

func NewService(
	propertyRepo repository.PropertyRepository,
	applicationRepo repository.ApplicationRepository,
	maintenanceRepo repository.MaintenanceRepository,
	paymentRepo repository.PaymentRepository,
	reportRepo repository.ReportRepository,
	interval time.Duration,
) Service {
	if interval <= 0 {
		interval = time.Minute
	}
	return &service{
		interval:    interval,
		subscribers: make(map[int]func(domain.NotificationCounts)),
		sources: []counterSource{
			{
				name: domain.SourceHomeOwnerApplications,
				fetch: func(ctx context.Context) (int64, error) {
					return applicationRepo.CountPending(ctx, domain.ApplicationHomeOwner)
				},
				set: func(c *domain.NotificationCounts, v int64) { c.HomeOwnerApplications = v },
				get: func(c domain.NotificationCounts) int64 { return c.HomeOwnerApplications },
			},
			{
				name: domain.SourceArtisanApplications,
				fetch: func(ctx context.Context) (int64, error) {
					return applicationRepo.CountPending(ctx, domain.ApplicationArtisan)
				},
				set: func(c *domain.NotificationCounts, v int64) { c.ArtisanApplications = v },
				get: func(c domain.NotificationCounts) int64 { return c.ArtisanApplications },
			},
			{
				name:  domain.SourcePropertyVerifications,
				fetch: propertyRepo.CountPendingVerifications,
				set:   func(c *domain.NotificationCounts, v int64) { c.PropertyVerifications = v },
				get:   func(c domain.NotificationCounts) int64 { return c.PropertyVerifications },
			},
			{
				name:  domain.SourceMaintenanceRequests,
				fetch: maintenanceRepo.CountOpen,
				set:   func(c *domain.NotificationCounts, v int64) { c.MaintenanceRequests = v },
				get:   func(c domain.NotificationCounts) int64 { return c.MaintenanceRequests },
			},
			{
				name:  domain.SourcePayments,
				fetch: paymentRepo.CountOutstanding,
				set:   func(c *domain.NotificationCounts, v int64) { c.Payments = v },
				get:   func(c domain.NotificationCounts) int64 { return c.Payments },
			},
			{
				name:  domain.SourceReports,
				fetch: reportRepo.CountOpen,
				set:   func(c *domain.NotificationCounts, v int64) { c.Reports = v },
				get:   func(c domain.NotificationCounts) int64 { return c.Reports },
			},
		},
	}
}

func (s *service) Counts(ctx context.Context) (domain.NotificationCounts, error) {
	s.mu.Lock()
	if s.refreshing {
		latest := s.latest
		s.mu.Unlock()
		return latest, nil
	}
	s.refreshing = true
	previous := s.latest
	s.mu.Unlock()

	counts := domain.NotificationCounts{}
	var stale []string
	for _, src := range s.sources {
		value, err := src.fetch(ctx)
		if err != nil {
			// One failed source never aborts the rest: the counter
			// keeps its previous value and is reported stale.
			log.Printf("notification aggregator: %s count failed: %v", src.name, err)
			src.set(&counts, src.get(previous))
			stale = append(stale, src.name)
			continue
		}
		src.set(&counts, value)
	}
	counts.Stale = stale

	s.mu.Lock()
	s.latest = counts
	s.refreshing = false
	subscribers := make([]func(domain.NotificationCounts), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(counts)
	}

	if len(stale) > 0 {
		return counts, &domain.StaleCountersError{Sources: stale}
	}
	return counts, nil
}

func (s *service) Latest() domain.NotificationCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

func (s *service) Subscribe(fn func(domain.NotificationCounts)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	first := len(s.subscribers) == 1
	inFlight := s.refreshing
	if first {
		stop := make(chan struct{})
		s.stopTicker = stop
		go s.tick(stop)
	}
	s.mu.Unlock()

	if first && !inFlight {
		go func() {
			_, _ = s.Counts(context.Background())
		}()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			if len(s.subscribers) == 0 && s.stopTicker != nil {
				close(s.stopTicker)
				s.stopTicker = nil
			}
			s.mu.Unlock()
		})
	}
}

func (s *service) Poke() {
	s.mu.Lock()
	observed := len(s.subscribers) > 0
	s.mu.Unlock()
	if !observed {
		return
	}
	go func() {
		_, _ = s.Counts(context.Background())
	}()
}

func (s *service) tick(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_, _ = s.Counts(context.Background())
		}
	}
}
