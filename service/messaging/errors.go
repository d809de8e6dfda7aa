package messaging

import "errors"

var (
	// ErrQueueFull is returned by non blocking publishers when buffer is exhausted
	ErrQueueFull = errors.New("messaging: queue full")
	// ErrClosed is returned when publishing to a closed queue
	ErrClosed = errors.New("messaging: queue closed")
	// ErrProcessed is returned when a message is acked or nacked twice
	ErrProcessed = errors.New("messaging: message already processed")
)
