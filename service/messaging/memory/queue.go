package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/thurgood/service/messaging"
)

// Config for memory queue implementation
type Config struct {
	Name        string
	QueueBuffer int
	MaxRetries  int
	RetryDelay  time.Duration
	// Block makes Publish wait for buffer space instead of failing with messaging.ErrQueueFull
	Block bool
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		Name:        "jobs",
		QueueBuffer: 1024,
		MaxRetries:  3,
		RetryDelay:  100 * time.Millisecond,
	}
}

// Message implements messaging.Message for in-memory queue
type Message[T any] struct {
	ID        string
	Retries   int
	CreatedAt time.Time
	payload   T
	queue     *Queue[T]
	mu        sync.Mutex
	processed bool
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return messaging.ErrProcessed
	}
	m.processed = true
	return nil
}

// Nack requeues the message after RetryDelay until MaxRetries is exceeded, then dead-letters it
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return messaging.ErrProcessed
	}
	m.processed = true
	retry := &Message[T]{ID: m.ID, Retries: m.Retries + 1, CreatedAt: m.CreatedAt, payload: m.payload, queue: m.queue}
	if retry.Retries > m.queue.config.MaxRetries {
		m.queue.deadLetter(retry)
		return nil
	}
	time.AfterFunc(m.queue.config.RetryDelay, func() {
		_ = m.queue.enqueue(context.Background(), retry, true)
	})
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	config   Config
	messages chan *Message[T]
	dlq      []*Message[T]
	dlqMu    sync.Mutex
	closeMu  sync.RWMutex
	closed   bool
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		config:   config,
		messages: make(chan *Message[T], config.QueueBuffer),
	}
}

// Name returns queue name
func (q *Queue[T]) Name() string { return q.config.Name }

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	msg := &Message[T]{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		payload:   *t,
		queue:     q,
	}
	return q.enqueue(ctx, msg, q.config.Block)
}

func (q *Queue[T]) enqueue(ctx context.Context, msg *Message[T], block bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.closeMu.RLock()
	defer q.closeMu.RUnlock()
	if q.closed {
		return messaging.ErrClosed
	}
	if !block {
		select {
		case q.messages <- msg:
			return nil
		default:
			return messaging.ErrQueueFull
		}
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg, ok := <-q.messages:
		if !ok {
			return nil, messaging.ErrClosed
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting messages; buffered messages can still be consumed
func (q *Queue[T]) Close() {
	q.closeMu.Lock()
	defer q.closeMu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.messages)
	}
}

func (q *Queue[T]) deadLetter(msg *Message[T]) {
	q.dlqMu.Lock()
	q.dlq = append(q.dlq, msg)
	q.dlqMu.Unlock()
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of messages in the dead letter queue
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
