package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/thurgood/service/messaging"
	"go.uber.org/zap"
)

// Listener feeds consumed events to a handler until stopped
type Listener struct {
	publisher *Publisher
	handler   func(*Event)
	logger    *zap.Logger
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

// NewListener creates a listener
func NewListener(publisher *Publisher, handler func(*Event), logger *zap.Logger) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{publisher: publisher, handler: handler, logger: logger, done: make(chan struct{})}
}

// Stop cancels consumption and waits for the loop to exit
func (l *Listener) Stop() {
	l.once.Do(func() {
		if l.cancel != nil {
			l.cancel()
			<-l.done
		}
	})
}

// Start consumes events in a background goroutine
func (l *Listener) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(ctx)
			switch {
			case ctx.Err() != nil:
				return
			case errors.Is(err, messaging.ErrClosed):
				return
			case err != nil:
				l.logger.Warn("failed to consume event", zap.Error(err))
			case event != nil:
				l.handler(event)
				continue
			}
			// empty or failing queue
			select {
			case <-ctx.Done():
				return
			case <-time.After(50 * time.Millisecond):
			}
		}
	}()
}
