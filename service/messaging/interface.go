package messaging

import (
	"context"
)

// Vendor names a queue implementation
type Vendor string

const (
	VendorMemory Vendor = "memory"
	VendorFS     Vendor = "fs"
)

// Publisher enqueues payloads
type Publisher[T any] interface {
	Publish(ctx context.Context, t *T) error
}

// Consumer dequeues payloads; a nil Message with nil error means nothing is pending
type Consumer[T any] interface {
	Consume(ctx context.Context) (Message[T], error)
}

// Queue carries dispatch payloads from the dispatcher to workers
type Queue[T any] interface {
	Publisher[T]
	Consumer[T]
}

// Message is a delivered payload awaiting settlement
type Message[T any] interface {
	T() *T
	// Ack settles the message as processed
	Ack() error
	// Nack returns the message for redelivery or dead-lettering once retries are exhausted
	Nack(err error) error
}
