package repository

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"kejani-backend/internal/domain"
)

const propertyChangeChannel = "properties:changes"

// PropertyFeed carries incremental change batches from the write path to
// live subscribers. The feed is unfiltered; the sync channel applies the
// consumer's filter when reconciling.
type PropertyFeed interface {
	Publish(ctx context.Context, change domain.PropertyChange) error
	Subscribe(ctx context.Context) (<-chan domain.ChangeBatch, func(), error)
}

type redisPropertyFeed struct {
	client *redis.Client
}

func NewRedisPropertyFeed(client *redis.Client) PropertyFeed {
	return &redisPropertyFeed{client: client}
}

func (f *redisPropertyFeed) Publish(ctx context.Context, change domain.PropertyChange) error {
	batch := domain.ChangeBatch{Changes: []domain.PropertyChange{change}}
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, propertyChangeChannel, data).Err()
}

// Subscribe opens a pub/sub subscription and decodes incoming messages
// into change batches, preserving arrival order. The returned cancel
// function closes the subscription; the batch channel closes after it.
func (f *redisPropertyFeed) Subscribe(ctx context.Context) (<-chan domain.ChangeBatch, func(), error) {
	pubsub := f.client.Subscribe(ctx, propertyChangeChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	batches := make(chan domain.ChangeBatch, 16)
	go func() {
		defer close(batches)
		for msg := range pubsub.Channel() {
			var batch domain.ChangeBatch
			if err := json.Unmarshal([]byte(msg.Payload), &batch); err != nil {
				log.Printf("property feed: dropping undecodable message: %v", err)
				continue
			}
			batches <- batch
		}
	}()

	cancel := func() {
		_ = pubsub.Close()
	}
	return batches, cancel, nil
}
