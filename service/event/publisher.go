package event

import (
	"context"

	"github.com/viant/thurgood/internal/clock"
	"github.com/viant/thurgood/service/messaging"
)

// Publisher writes lifecycle events to a queue
type Publisher struct {
	queue messaging.Queue[Event]
}

// NewPublisher creates a publisher
func NewPublisher(queue messaging.Queue[Event]) *Publisher {
	return &Publisher{queue: queue}
}

// Publish stamps and publishes event
func (p *Publisher) Publish(ctx context.Context, event *Event) error {
	event.CreatedAt = clock.Now()
	return p.queue.Publish(ctx, event)
}

// Consume returns the next acknowledged event, nil when a non-blocking queue is empty
func (p *Publisher) Consume(ctx context.Context) (*Event, error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
