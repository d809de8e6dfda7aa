package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/thurgood/internal/clock"
	"github.com/viant/thurgood/internal/idgen"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/allocator"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/dao/criteria"
	"github.com/viant/thurgood/service/event"
	"github.com/viant/thurgood/service/metrics"
	"github.com/viant/thurgood/service/provision"
	"github.com/viant/thurgood/service/syslog"
	"go.uber.org/zap"
)

// ListQuery represents job listing parameters
type ListQuery struct {
	Status   string
	UserID   string
	Platform string
	Language string
	// Sort is createdAt or updatedAt, "-" prefix for descending
	Sort  string
	Skip  int
	Limit int
}

// Service implements job and server operations
type Service struct {
	jobs        dao.Service[string, model.Job]
	servers     dao.Service[string, model.Server]
	loggers     dao.Service[string, model.Logger]
	allocator   *allocator.Service
	publisher   allocator.Publisher
	provisioner *provision.Service
	forwarder   syslog.Forwarder
	events      *event.Publisher
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// Create inserts a new job with status created unless supplied
func (s *Service) Create(ctx context.Context, job *model.Job, options ...CreateOption) (*model.Job, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if job.ID != "" && !idgen.Valid(job.ID) {
		return nil, &model.ValidationError{Field: "id", Value: job.ID}
	}
	opts := &createOptions{}
	for _, option := range options {
		option(opts)
	}
	job = job.Clone()
	job.Init(idgen.New(), clock.Now())

	if job.LoggerID == "" && opts.loggerName != "" {
		logger, err := s.loggers.FindOne(ctx, criteria.LoggerByName(opts.loggerName))
		switch {
		case err == nil:
			job.LoggerID = logger.ID
		case !errors.Is(err, dao.ErrNotFound):
			return nil, &model.StoreError{Op: "find logger", Err: err}
		case s.provisioner == nil:
			return nil, &model.NotFoundError{Kind: model.KindLogger, ID: opts.loggerName}
		default:
			return s.createProvisioned(ctx, job, opts)
		}
	}
	if err := s.insert(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) createProvisioned(ctx context.Context, job *model.Job, opts *createOptions) (*model.Job, error) {
	request := &provision.Request{LoggerName: opts.loggerName, UserID: job.UserID, Email: job.Email, PapertrailID: opts.papertrailID}
	_, err := s.provisioner.Provision(ctx, request, func(ctx context.Context, logger *model.Logger) error {
		job.LoggerID = logger.ID
		return s.insert(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) insert(ctx context.Context, job *model.Job) error {
	if err := s.jobs.Insert(ctx, job); err != nil {
		return insertError(model.KindJob, job.ID, "insert job", err)
	}
	s.logger.Info("job created",
		zap.String("jobId", job.ID),
		zap.String("language", job.Language),
		zap.String("platform", job.Platform))
	s.emit(ctx, event.NewEvent(event.JobCreated, job.ID, "", string(job.Status)))
	return nil
}

// Get returns job by id
func (s *Service) Get(ctx context.Context, id string) (*model.Job, error) {
	if !idgen.Valid(id) {
		return nil, &model.ValidationError{Field: "id", Value: id}
	}
	ret, err := s.jobs.Load(ctx, id)
	if err != nil {
		return nil, notFoundOr(model.KindJob, id, "load job", err)
	}
	return ret, nil
}

// List returns jobs matching query
func (s *Service) List(ctx context.Context, query *ListQuery) ([]*model.Job, error) {
	if query == nil {
		query = &ListQuery{}
	}
	if query.Skip < 0 || query.Limit < 0 {
		return nil, &model.ValidationError{Field: "limit", Value: fmt.Sprintf("%v/%v", query.Skip, query.Limit)}
	}
	less, err := criteria.JobOrder(query.Sort)
	if err != nil {
		return nil, &model.ValidationError{Field: "sort", Value: query.Sort}
	}
	filter := criteria.Jobs(criteria.JobFields{Status: query.Status, UserID: query.UserID, Platform: query.Platform, Language: query.Language})
	ret, err := s.jobs.Find(ctx, &dao.Query[model.Job]{Filter: filter, Sort: less, Skip: query.Skip, Limit: query.Limit})
	if err != nil {
		return nil, &model.StoreError{Op: "list jobs", Err: err}
	}
	return ret, nil
}

// Submit reserves a server and dispatches the job
func (s *Service) Submit(ctx context.Context, id string) (*allocator.SubmitResult, error) {
	result, err := s.allocator.Submit(ctx, id)
	if err == nil {
		s.emit(ctx, event.NewEvent(event.JobSubmitted, result.Job.ID, result.Server.ID, string(result.Job.Status)).
			WithMetadata("type", result.Dispatch.Type))
	}
	return result, err
}

// Complete marks the job complete and releases its server
func (s *Service) Complete(ctx context.Context, id string) (*allocator.CompleteResult, error) {
	result, err := s.allocator.Complete(ctx, id)
	if result != nil {
		evt := event.NewEvent(event.JobCompleted, result.Job.ID, "", string(result.Job.Status))
		if server := result.Server(); server != nil {
			evt.ServerID = server.ID
		}
		if err != nil {
			evt.WithMetadata("releaseError", err.Error())
		}
		s.emit(ctx, evt)
	}
	return result, err
}

// emit publishes a lifecycle event; failures are logged and never fail the operation
func (s *Service) emit(ctx context.Context, evt *event.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", string(evt.Type)), zap.String("jobId", evt.JobID), zap.Error(err))
	}
}

// Publish relays message to the work queue unconditionally
func (s *Service) Publish(ctx context.Context, message string) (*model.Dispatch, error) {
	if message == "" {
		return nil, &model.ValidationError{Field: "message"}
	}
	relay := model.NewRelay(message, clock.Now())
	if err := s.publisher.Publish(ctx, relay); err != nil {
		s.metrics.CountPublish("relay", metrics.OutcomePublishErr)
		return nil, &model.DispatchPublishError{Err: err}
	}
	s.metrics.CountPublish("relay", metrics.OutcomeOK)
	return relay, nil
}

func insertError(kind, id, op string, err error) error {
	if errors.Is(err, dao.ErrDuplicate) {
		return &model.ConflictError{Kind: kind, ID: id}
	}
	return &model.StoreError{Op: op, Err: err}
}

func notFoundOr(kind, id, op string, err error) error {
	if errors.Is(err, dao.ErrNotFound) {
		return &model.NotFoundError{Kind: kind, ID: id}
	}
	return &model.StoreError{Op: op, Err: err}
}

// New creates lifecycle service
func New(jobs dao.Service[string, model.Job], servers dao.Service[string, model.Server], loggers dao.Service[string, model.Logger], alloc *allocator.Service, publisher allocator.Publisher, options ...Option) *Service {
	ret := &Service{
		jobs:      jobs,
		servers:   servers,
		loggers:   loggers,
		allocator: alloc,
		publisher: publisher,
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
