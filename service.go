package thurgood

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"
	"github.com/viant/thurgood/internal/logging"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/allocator"
	"github.com/viant/thurgood/service/api"
	"github.com/viant/thurgood/service/dao"
	fsdao "github.com/viant/thurgood/service/dao/fs"
	"github.com/viant/thurgood/service/dao/store"
	"github.com/viant/thurgood/service/event"
	"github.com/viant/thurgood/service/lifecycle"
	"github.com/viant/thurgood/service/messaging"
	fsqueue "github.com/viant/thurgood/service/messaging/fs"
	mqueue "github.com/viant/thurgood/service/messaging/memory"
	"github.com/viant/thurgood/service/metrics"
	"github.com/viant/thurgood/service/provision"
	"github.com/viant/thurgood/service/syslog"
	"github.com/viant/thurgood/tracing"
	"go.uber.org/zap"
)

// Service wires stores, work queue, allocator and lifecycle operations
type Service struct {
	config     *Config
	fs         afs.Service
	logger     *zap.Logger
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	jobs       dao.Service[string, model.Job]
	servers    dao.Service[string, model.Server]
	loggers    dao.Service[string, model.Logger]
	accounts   dao.Service[string, model.LoggerAccount]
	queue      messaging.Queue[model.Dispatch]
	provider   provision.Provider
	forwarder  syslog.Forwarder
	events     *event.Publisher
	allocator  *allocator.Service
	lifecycle  *lifecycle.Service
	initErrors []error
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := errors.Join(s.initErrors...); err != nil {
		return err
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureBaseSetup(ctx); err != nil {
		return err
	}
	s.allocator = allocator.New(s.jobs, s.servers, s.queue,
		allocator.WithLogger(s.logger),
		allocator.WithMetrics(s.metrics))
	lifecycleOptions := []lifecycle.Option{
		lifecycle.WithLogger(s.logger),
		lifecycle.WithMetrics(s.metrics),
	}
	if s.provider != nil {
		lifecycleOptions = append(lifecycleOptions, lifecycle.WithProvisioner(provision.New(s.accounts, s.loggers, s.provider, s.logger)))
	}
	if s.forwarder != nil {
		lifecycleOptions = append(lifecycleOptions, lifecycle.WithForwarder(s.forwarder))
	}
	if s.events != nil {
		lifecycleOptions = append(lifecycleOptions, lifecycle.WithEvents(s.events))
	}
	s.lifecycle = lifecycle.New(s.jobs, s.servers, s.loggers, s.allocator, s.queue, lifecycleOptions...)
	return nil
}

func (s *Service) ensureBaseSetup(ctx context.Context) (err error) {
	if s.logger == nil {
		if s.logger, err = logging.New(s.config.Log); err != nil {
			return err
		}
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if err = tracing.Setup(&s.config.Tracing); err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	s.registry = prometheus.NewRegistry()
	s.metrics = metrics.New()
	if err = s.metrics.Register(s.registry); err != nil {
		return err
	}
	if err = s.ensureStores(ctx); err != nil {
		return err
	}
	if s.queue == nil {
		if s.queue, err = s.newQueue(ctx); err != nil {
			return err
		}
	}
	if s.provider == nil && s.config.Provision != nil {
		s.provider = provision.NewPapertrailProvider(s.config.Provision, nil)
	}
	if s.forwarder == nil && s.config.Syslog.Forward {
		s.forwarder = syslog.NewForwarder(s.config.Syslog.Network, s.config.Syslog.Address)
	}
	if s.events == nil && s.config.Events.Enabled {
		s.events = event.NewPublisher(mqueue.NewQueue[event.Event](mqueue.Config{Name: "events", QueueBuffer: s.config.Events.Buffer}))
	}
	return nil
}

func (s *Service) ensureStores(ctx context.Context) (err error) {
	cfg := s.config.Store
	if cfg.Vendor == dao.VendorFS {
		if s.jobs == nil {
			if s.jobs, err = fsdao.New[model.Job](ctx, s.fs, cfg.BaseURL, "jobs", model.JobKey); err != nil {
				return err
			}
		}
		if s.servers == nil {
			if s.servers, err = fsdao.New[model.Server](ctx, s.fs, cfg.BaseURL, "servers", model.ServerKey); err != nil {
				return err
			}
		}
		if s.loggers == nil {
			if s.loggers, err = fsdao.New[model.Logger](ctx, s.fs, cfg.BaseURL, "loggers", model.LoggerKey); err != nil {
				return err
			}
		}
		if s.accounts == nil {
			if s.accounts, err = fsdao.New[model.LoggerAccount](ctx, s.fs, cfg.BaseURL, "loggerAccounts", model.LoggerAccountKey); err != nil {
				return err
			}
		}
		return nil
	}
	if s.jobs == nil {
		s.jobs = store.NewMemoryStore[string, model.Job](model.JobKey)
	}
	if s.servers == nil {
		s.servers = store.NewMemoryStore[string, model.Server](model.ServerKey)
	}
	if s.loggers == nil {
		s.loggers = store.NewMemoryStore[string, model.Logger](model.LoggerKey)
	}
	if s.accounts == nil {
		s.accounts = store.NewMemoryStore[string, model.LoggerAccount](model.LoggerAccountKey)
	}
	return nil
}

func (s *Service) newQueue(ctx context.Context) (messaging.Queue[model.Dispatch], error) {
	cfg := s.config.Queue
	if cfg.Vendor == messaging.VendorFS {
		return fsqueue.NewQueue[model.Dispatch](ctx, s.fs, fsqueue.Config{Name: cfg.Name, BaseURL: cfg.BaseURL, MaxRetries: cfg.MaxRetries})
	}
	return mqueue.NewQueue[model.Dispatch](mqueue.Config{
		Name:        cfg.Name,
		QueueBuffer: cfg.Buffer,
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  cfg.RetryDelay(),
	}), nil
}

// Config returns effective configuration
func (s *Service) Config() *Config { return s.config }

// Logger returns the service logger
func (s *Service) Logger() *zap.Logger { return s.logger }

// Allocator returns the allocation engine
func (s *Service) Allocator() *allocator.Service { return s.allocator }

// Lifecycle returns job and server operations
func (s *Service) Lifecycle() *lifecycle.Service { return s.lifecycle }

// Queue returns the work queue
func (s *Service) Queue() messaging.Queue[model.Dispatch] { return s.queue }

// Events returns lifecycle event publisher, nil unless events are enabled
func (s *Service) Events() *event.Publisher { return s.events }

// ListenEvents drains lifecycle events into handler until ctx is done or the listener is stopped.
// A nil handler logs events at debug level. It returns nil when events are disabled.
func (s *Service) ListenEvents(ctx context.Context, handler func(*event.Event)) *event.Listener {
	if s.events == nil {
		return nil
	}
	if handler == nil {
		logger := s.logger.Named("events")
		handler = func(evt *event.Event) {
			logger.Debug("lifecycle event",
				zap.String("type", string(evt.Type)),
				zap.String("jobId", evt.JobID),
				zap.String("serverId", evt.ServerID),
				zap.String("status", evt.Status),
				zap.Any("metadata", evt.Metadata))
		}
	}
	listener := event.NewListener(s.events, handler, s.logger)
	listener.Start(ctx)
	return listener
}

// Registry returns the metrics registry
func (s *Service) Registry() *prometheus.Registry { return s.registry }

// Handler returns HTTP routes for the lifecycle operations and /metrics
func (s *Service) Handler() http.Handler {
	return api.New(s.lifecycle,
		api.WithLogger(s.logger),
		api.WithGatherer(s.registry),
		api.WithPrefix(s.config.HTTP.Prefix)).Router()
}

// New creates dispatcher service
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
