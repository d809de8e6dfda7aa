package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	srv := NewMemoryStore[string, model.Server](model.ServerKey)

	assert.ErrorIs(t, srv.Insert(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Insert(ctx, &model.Server{}), dao.ErrInvalidID)
	require.NoError(t, srv.Insert(ctx, &model.Server{ID: "s1", Languages: []string{"Java"}, Platform: "Heroku", Status: model.ServerStatusAvailable}))
	require.NoError(t, srv.Insert(ctx, &model.Server{ID: "s2", Languages: []string{"Go"}, Platform: "Heroku", Status: model.ServerStatusAvailable}))
	assert.ErrorIs(t, srv.Insert(ctx, &model.Server{ID: "s1"}), dao.ErrDuplicate)

	loaded, err := srv.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Java"}, loaded.Languages)

	loaded.Languages[0] = "mutated"
	again, err := srv.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Java", again.Languages[0], "store must hand out copies")

	_, err = srv.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	found, err := srv.FindOne(ctx, func(s *model.Server) bool { return s.HasLanguage("Go") })
	require.NoError(t, err)
	assert.Equal(t, "s2", found.ID)

	all, err := srv.Find(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "s1", all[0].ID)

	require.NoError(t, srv.Delete(ctx, "s1"))
	assert.ErrorIs(t, srv.Delete(ctx, "s1"), dao.ErrNotFound)
	all, err = srv.Find(ctx, &dao.Query[model.Server]{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStore_FindAndModify(t *testing.T) {
	ctx := context.Background()
	jobs := NewMemoryStore[string, model.Job](model.JobKey)
	require.NoError(t, jobs.Insert(ctx, &model.Job{ID: "j1", Status: model.JobStatusCreated}))

	updated, err := jobs.FindAndModify(ctx, func(j *model.Job) bool { return j.ID == "j1" }, func(j *model.Job) {
		j.Status = model.JobStatusSubmitted
	})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusSubmitted, updated.Status)

	loaded, _ := jobs.Load(ctx, "j1")
	assert.Equal(t, model.JobStatusSubmitted, loaded.Status)

	_, err = jobs.FindAndModify(ctx, func(j *model.Job) bool { return false }, nil)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	_, err = jobs.FindAndModify(ctx, nil, func(j *model.Job) { j.ID = "other" })
	assert.ErrorIs(t, err, dao.ErrKeyChanged)
	loaded, _ = jobs.Load(ctx, "j1")
	assert.Equal(t, "j1", loaded.ID)
}

func TestMemoryStore_FindAndModifyIsExclusive(t *testing.T) {
	ctx := context.Background()
	servers := NewMemoryStore[string, model.Server](model.ServerKey)
	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, servers.Insert(ctx, &model.Server{ID: id, Languages: []string{"Java"}, Platform: "Heroku", Status: model.ServerStatusAvailable}))
	}
	available := func(s *model.Server) bool { return s.Status == model.ServerStatusAvailable }

	var wg sync.WaitGroup
	var won int32
	winners := sync.Map{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			server, err := servers.FindAndModify(ctx, available, func(s *model.Server) {
				s.Status = model.ServerStatusReserved
			})
			if err != nil {
				assert.ErrorIs(t, err, dao.ErrNotFound)
				return
			}
			atomic.AddInt32(&won, 1)
			_, dup := winners.LoadOrStore(server.ID, i)
			assert.False(t, dup, "server %v reserved twice", server.ID)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(3), won)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	jobs := NewMemoryStore[string, model.Job](model.JobKey)
	assert.ErrorIs(t, jobs.Insert(ctx, &model.Job{ID: "j1"}), context.Canceled)
	_, err := jobs.FindAndModify(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
