package fs

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/thurgood/service/messaging"
)

type TestPayload struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func newQueue(t *testing.T, maxRetries int) *Queue[TestPayload] {
	tempDir, err := os.MkdirTemp("", "queue-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })
	queue, err := NewQueue[TestPayload](context.Background(), afs.New(), Config{Name: "jobs", BaseURL: tempDir, MaxRetries: maxRetries})
	require.NoError(t, err)
	return queue
}

func TestQueue(t *testing.T) {
	ctx := context.Background()
	queue := newQueue(t, 1)

	testCases := []TestPayload{
		{ID: "1", Message: "Test message 1"},
		{ID: "2", Message: "Test message 2"},
		{ID: "3", Message: "Test message 3"},
	}
	for i := range testCases {
		require.NoError(t, queue.Publish(ctx, &testCases[i]))
	}
	size, err := queue.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	for _, expected := range testCases {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		require.NotNil(t, message)
		assert.Equal(t, expected, *message.T(), "messages are consumed in publish order")
		assert.NoError(t, message.Ack())
		assert.ErrorIs(t, message.Ack(), messaging.ErrProcessed)
	}

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.Nil(t, message)

	completed, err := queue.list(ctx, queue.completedDir)
	require.NoError(t, err)
	assert.Len(t, completed, 3)
	processing, err := queue.list(ctx, queue.processingDir)
	require.NoError(t, err)
	assert.Len(t, processing, 0)
}

func TestQueue_Nack(t *testing.T) {
	ctx := context.Background()
	queue := newQueue(t, 1)
	require.NoError(t, queue.Publish(ctx, &TestPayload{ID: "retry"}))

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Nack(errors.New("worker busy")))

	message, err = queue.Consume(ctx)
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.Equal(t, 1, message.(*Message[TestPayload]).Retries)
	assert.Equal(t, "worker busy", message.(*Message[TestPayload]).Error)
	require.NoError(t, message.Nack(nil))

	size, err := queue.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, size)
	dlq, err := queue.DLQSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dlq)
}

func TestNewQueue_Validation(t *testing.T) {
	_, err := NewQueue[TestPayload](context.Background(), afs.New(), Config{Name: "jobs"})
	assert.Error(t, err)
	_, err = NewQueue[TestPayload](context.Background(), afs.New(), Config{BaseURL: "/tmp"})
	assert.Error(t, err)
}
