package thurgood

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/event"
	"github.com/viant/thurgood/service/messaging"
	"go.uber.org/zap"
)

func TestService_MemoryVendors(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Events.Enabled = true
	srv, err := New(ctx, WithConfig(cfg), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	require.NotNil(t, srv.Events())

	jobs := srv.Lifecycle()
	_, err = jobs.RegisterServer(ctx, &model.Server{Languages: []string{"Java"}, Platform: "Heroku"})
	require.NoError(t, err)
	job, err := jobs.Create(ctx, &model.Job{Language: "Java", Platform: "Heroku"})
	require.NoError(t, err)

	result, err := jobs.Submit(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, result.Server.JobID)

	msg, err := srv.Queue().Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, job.ID, msg.T().JobID)
	require.NoError(t, msg.Ack())

	completed, err := jobs.Complete(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ServerStatusAvailable, completed.Server().Status)

	evt, err := srv.Events().Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, event.ServerRegistered, evt.Type)

	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestService_FSVendors(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Store.Vendor = dao.VendorFS
	cfg.Store.BaseURL = t.TempDir()
	cfg.Queue.Vendor = messaging.VendorFS
	cfg.Queue.BaseURL = t.TempDir()
	srv, err := New(ctx, WithConfig(cfg), WithLogger(zap.NewNop()))
	require.NoError(t, err)

	jobs := srv.Lifecycle()
	server, err := jobs.RegisterServer(ctx, &model.Server{Languages: []string{"Go"}, Platform: "AWS"})
	require.NoError(t, err)
	job, err := jobs.Create(ctx, &model.Job{Language: "Go", Platform: "AWS"})
	require.NoError(t, err)
	_, err = jobs.Submit(ctx, job.ID)
	require.NoError(t, err)

	reopened, err := New(ctx, WithConfig(cfg), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	held, err := reopened.Lifecycle().GetServer(ctx, server.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, held.JobID, "reservation is persisted")

	msg, err := reopened.Queue().Consume(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "Go", msg.T().Type)
}

func TestService_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Vendor = "mongo"
	_, err := New(context.Background(), WithConfig(cfg))
	assert.Error(t, err)
}

func TestService_ServeConfig(t *testing.T) {
	ctx := context.Background()
	cfg := ServeConfig(t.TempDir())
	cfg.Queue.Buffer = 2
	require.NoError(t, cfg.ValidateServe())
	assert.Equal(t, dao.VendorFS, cfg.Store.Vendor)
	assert.Equal(t, messaging.VendorFS, cfg.Queue.Vendor)
	srv, err := New(ctx, WithConfig(cfg), WithLogger(zap.NewNop()))
	require.NoError(t, err)

	jobs := srv.Lifecycle()
	_, err = jobs.RegisterServer(ctx, &model.Server{Languages: []string{"Ruby"}, Platform: "Heroku"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		job, err := jobs.Create(ctx, &model.Job{Language: "Ruby", Platform: "Heroku"})
		require.NoError(t, err)
		_, err = jobs.Submit(ctx, job.ID)
		require.NoError(t, err, "dispatch %v is not bounded by queue buffer", i)
		_, err = jobs.Complete(ctx, job.ID)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		msg, err := srv.Queue().Consume(ctx)
		require.NoError(t, err)
		require.NotNil(t, msg)
		require.NoError(t, msg.Ack())
	}
}

func TestService_ListenEvents(t *testing.T) {
	ctx := context.Background()
	disabled, err := New(ctx, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Nil(t, disabled.ListenEvents(ctx, nil))

	cfg := DefaultConfig()
	cfg.Events.Enabled = true
	cfg.Events.Buffer = 2
	srv, err := New(ctx, WithConfig(cfg), WithLogger(zap.NewNop()))
	require.NoError(t, err)

	received := make(chan *event.Event, 16)
	listener := srv.ListenEvents(ctx, func(evt *event.Event) { received <- evt })
	require.NotNil(t, listener)
	defer listener.Stop()

	for i := 0; i < 5; i++ {
		_, err = srv.Lifecycle().RegisterServer(ctx, &model.Server{Languages: []string{"Go"}, Platform: "AWS"})
		require.NoError(t, err)
		select {
		case evt := <-received:
			assert.Equal(t, event.ServerRegistered, evt.Type)
		case <-time.After(2 * time.Second):
			require.FailNow(t, "event was not drained", "registration %v", i)
		}
	}
}
