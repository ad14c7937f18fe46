package memory

import (
	"context"
	"sync"
)

// PublishedEvent records one Publish call.
type PublishedEvent struct {
	Key   string
	Event any
}

// Publisher records published events instead of writing to a broker.
type Publisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{Key: key, Event: event})
	return nil
}
