package fs

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/thurgood/service/messaging"
)

// MessageState represents the state of a message in the filesystem queue
type MessageState string

const (
	MessageStatePending    MessageState = "pending"
	MessageStateProcessing MessageState = "processing"
	MessageStateCompleted  MessageState = "completed"
	MessageStateFailed     MessageState = "failed"
)

// Message implements messaging.Message for filesystem queue
type Message[T any] struct {
	ID        string       `json:"id"`
	Queue     string       `json:"queue"`
	Data      T            `json:"data"`
	State     MessageState `json:"state"`
	Error     string       `json:"error,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Retries   int          `json:"retries"`

	filename  string
	queue     *Queue[T]
	processed bool
	mu        sync.Mutex
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.Data
}

// Ack moves the message from processing to completed
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return messaging.ErrProcessed
	}
	m.processed = true
	m.State = MessageStateCompleted
	m.UpdatedAt = time.Now()
	return m.queue.settle(context.Background(), m, m.queue.completedDir)
}

// Nack moves the message back to pending, or to the dead letter directory once MaxRetries is exceeded
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return messaging.ErrProcessed
	}
	m.processed = true
	m.Retries++
	m.UpdatedAt = time.Now()
	if err != nil {
		m.Error = err.Error()
	}
	if m.Retries > m.queue.config.MaxRetries {
		m.State = MessageStateFailed
		return m.queue.settle(context.Background(), m, m.queue.dlqDir)
	}
	m.State = MessageStatePending
	return m.queue.settle(context.Background(), m, m.queue.pendingDir)
}

// Config holds configuration for filesystem queue
type Config struct {
	Name       string
	BaseURL    string
	MaxRetries int
}

// DefaultConfig returns a default queue configuration
func DefaultConfig() Config {
	return Config{
		Name:       "jobs",
		BaseURL:    "/tmp/thurgood/queue",
		MaxRetries: 3,
	}
}

// Queue implements a filesystem-based messaging.Queue. Messages are JSON
// documents moved between pending, processing, completed and dlq directories;
// file names are prefixed with the publish time so that pending messages are
// consumed in publish order.
type Queue[T any] struct {
	fs            afs.Service
	config        Config
	pendingDir    string
	processingDir string
	completedDir  string
	dlqDir        string
	mu            sync.Mutex
}

// NewQueue creates a new filesystem-based queue
func NewQueue[T any](ctx context.Context, fs afs.Service, config Config) (*Queue[T], error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if config.Name == "" {
		return nil, fmt.Errorf("queue name cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	base := url.Join(url.Normalize(config.BaseURL, file.Scheme), config.Name)
	q := &Queue[T]{
		fs:            fs,
		config:        config,
		pendingDir:    url.Join(base, string(MessageStatePending)),
		processingDir: url.Join(base, string(MessageStateProcessing)),
		completedDir:  url.Join(base, string(MessageStateCompleted)),
		dlqDir:        url.Join(base, "dlq"),
	}
	for _, dir := range []string{q.pendingDir, q.processingDir, q.completedDir, q.dlqDir} {
		exists, _ := fs.Exists(ctx, dir)
		if exists {
			continue
		}
		if err := fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return q, nil
}

// Name returns queue name
func (q *Queue[T]) Name() string { return q.config.Name }

// Publish writes a new pending message; the call returns once the write is acknowledged by storage
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	now := time.Now()
	message := &Message[T]{
		ID:        uuid.New().String(),
		Queue:     q.config.Name,
		Data:      *t,
		State:     MessageStatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	message.filename = fmt.Sprintf("%020d-%s.json", now.UnixNano(), message.ID)
	return q.write(ctx, url.Join(q.pendingDir, message.filename), message)
}

// Consume moves the oldest pending message to processing; it returns nil message when queue is empty
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	names, err := q.list(ctx, q.pendingDir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	name := names[0]
	message, err := q.read(ctx, url.Join(q.pendingDir, name))
	if err != nil {
		return nil, err
	}
	message.filename = name
	message.queue = q
	message.State = MessageStateProcessing
	message.UpdatedAt = time.Now()
	if err = q.write(ctx, url.Join(q.processingDir, name), message); err != nil {
		return nil, err
	}
	if err = q.fs.Delete(ctx, url.Join(q.pendingDir, name)); err != nil {
		return nil, fmt.Errorf("failed to delete pending message %v: %w", name, err)
	}
	return message, nil
}

// Size returns number of pending messages
func (q *Queue[T]) Size(ctx context.Context) (int, error) {
	names, err := q.list(ctx, q.pendingDir)
	return len(names), err
}

// DLQSize returns number of dead-lettered messages
func (q *Queue[T]) DLQSize(ctx context.Context) (int, error) {
	names, err := q.list(ctx, q.dlqDir)
	return len(names), err
}

func (q *Queue[T]) settle(ctx context.Context, m *Message[T], dir string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.write(ctx, url.Join(dir, m.filename), m); err != nil {
		return err
	}
	processing := url.Join(q.processingDir, m.filename)
	if exists, _ := q.fs.Exists(ctx, processing); exists {
		if err := q.fs.Delete(ctx, processing); err != nil {
			return fmt.Errorf("failed to delete processing message %v: %w", m.filename, err)
		}
	}
	return nil
}

func (q *Queue[T]) list(ctx context.Context, dir string) ([]string, error) {
	objects, err := q.fs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", dir, err)
	}
	var names []string
	for _, object := range objects {
		if !object.IsDir() && strings.HasSuffix(object.Name(), ".json") {
			names = append(names, object.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (q *Queue[T]) write(ctx context.Context, URL string, m *Message[T]) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err = q.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write message %v: %w", URL, err)
	}
	return nil
}

func (q *Queue[T]) read(ctx context.Context, URL string) (*Message[T], error) {
	data, err := q.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read message %s: %w", URL, err)
	}
	var message Message[T]
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message %s: %w", URL, err)
	}
	return &message, nil
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
