package allocator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/thurgood/internal/clock"
	"github.com/viant/thurgood/internal/idgen"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/dao/criteria"
	"github.com/viant/thurgood/service/metrics"
	"github.com/viant/thurgood/tracing"
	"go.uber.org/zap"
)

// Publisher publishes dispatch messages to the work queue; messaging.Queue[model.Dispatch] satisfies it.
type Publisher interface {
	Publish(ctx context.Context, dispatch *model.Dispatch) error
}

// SubmitResult represents the outcome of a submission. It is also returned with
// StoreError and DispatchPublishError raised after the reservation, so callers
// can tell which server is held.
type SubmitResult struct {
	Job      *model.Job
	Server   *model.Server
	Dispatch *model.Dispatch
}

// CompleteResult represents the outcome of a completion. Servers lists every
// server released; it is empty when the job held none.
type CompleteResult struct {
	Job     *model.Job
	Servers []*model.Server
}

// Server returns the first released server or nil
func (r *CompleteResult) Server() *model.Server {
	if r == nil || len(r.Servers) == 0 {
		return nil
	}
	return r.Servers[0]
}

// Service reserves servers for jobs and releases them on completion
type Service struct {
	jobs      dao.Service[string, model.Job]
	servers   dao.Service[string, model.Server]
	publisher Publisher
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// New creates a new allocator service
func New(jobs dao.Service[string, model.Job], servers dao.Service[string, model.Server], publisher Publisher, options ...Option) *Service {
	ret := &Service{
		jobs:      jobs,
		servers:   servers,
		publisher: publisher,
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Submit reserves an available server matching the job language and platform,
// marks the job submitted and publishes a dispatch message. Any job status is
// accepted, including submitted: a resubmission reserves another server.
func (s *Service) Submit(ctx context.Context, jobID string) (result *SubmitResult, err error) {
	started := time.Now()
	ctx, span := tracing.Start(ctx, "allocator.Submit")
	span.Job(jobID)
	defer func() {
		span.End(err)
		s.metrics.ObserveSubmit(outcomeOf(err), time.Since(started))
	}()

	if !idgen.Valid(jobID) {
		return nil, &model.ValidationError{Field: "id", Value: jobID}
	}
	job, err := s.jobs.Load(ctx, jobID)
	if err != nil {
		return nil, jobError("load job", jobID, err)
	}

	now := clock.Now()
	server, err := s.servers.FindAndModify(ctx, criteria.AvailableServer(job.Language, job.Platform), reserve(job.ID, now))
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.logger.Warn("no available server",
				zap.String("jobId", job.ID),
				zap.String("language", job.Language),
				zap.String("platform", job.Platform))
			return nil, &model.NoCapacityError{JobID: job.ID, Language: job.Language, Platform: job.Platform}
		}
		return nil, &model.StoreError{Op: "reserve server", Err: err}
	}
	s.metrics.Reserved()
	span.Server(server.ID)
	result = &SubmitResult{Job: job, Server: server}

	// the reservation stands from here on: failures below never release the server
	submitted, err := s.jobs.FindAndModify(ctx, criteria.JobByID(job.ID), markSubmitted(now))
	if err != nil {
		s.logger.Error("server reserved but job status update failed",
			zap.String("jobId", job.ID), zap.String("serverId", server.ID), zap.Error(err))
		return result, &model.StoreError{Op: "mark job submitted", Err: err}
	}
	result.Job = submitted

	dispatch := model.NewDispatch(server, submitted, now)
	result.Dispatch = dispatch
	if err = s.publisher.Publish(ctx, dispatch); err != nil {
		s.metrics.CountPublish("dispatch", metrics.OutcomePublishErr)
		s.logger.Error("server reserved but dispatch publish failed",
			zap.String("jobId", job.ID), zap.String("serverId", server.ID), zap.Error(err))
		return result, &model.DispatchPublishError{JobID: job.ID, ServerID: server.ID, Err: err}
	}
	s.metrics.CountPublish("dispatch", metrics.OutcomeOK)
	s.logger.Info("job submitted",
		zap.String("jobId", job.ID), zap.String("serverId", server.ID), zap.String("type", dispatch.Type))
	return result, nil
}

// Complete marks the job complete and then releases every server bound to it.
// A release failure is reported as ReleaseError together with the completed job;
// the completion itself is never reverted.
func (s *Service) Complete(ctx context.Context, jobID string) (result *CompleteResult, err error) {
	ctx, span := tracing.Start(ctx, "allocator.Complete")
	span.Job(jobID)
	defer func() {
		span.End(err)
		s.metrics.CountComplete(outcomeOf(err))
	}()

	if !idgen.Valid(jobID) {
		return nil, &model.ValidationError{Field: "id", Value: jobID}
	}
	now := clock.Now()
	job, err := s.jobs.FindAndModify(ctx, criteria.JobByID(jobID), markComplete(now))
	if err != nil {
		return nil, jobError("complete job", jobID, err)
	}
	result = &CompleteResult{Job: job}

	for {
		server, err := s.servers.FindAndModify(ctx, criteria.ServerBoundTo(job.ID), release(now))
		if errors.Is(err, dao.ErrNotFound) {
			break
		}
		if err != nil {
			s.logger.Error("job completed but server release failed", zap.String("jobId", job.ID), zap.Error(err))
			return result, &model.ReleaseError{JobID: job.ID, Err: fmt.Errorf("release server: %w", err)}
		}
		s.metrics.Released()
		result.Servers = append(result.Servers, server)
	}
	fields := []zap.Field{zap.String("jobId", job.ID), zap.Int("released", len(result.Servers))}
	if server := result.Server(); server != nil {
		fields = append(fields, zap.String("serverId", server.ID))
	}
	s.logger.Info("job completed", fields...)
	return result, nil
}
