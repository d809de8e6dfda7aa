package thurgood

import (
	"github.com/viant/afs"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/event"
	"github.com/viant/thurgood/service/messaging"
	"github.com/viant/thurgood/service/provision"
	"github.com/viant/thurgood/service/syslog"
	"github.com/viant/thurgood/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the dispatcher service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger, otherwise one is built from Config.Log
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithFileSystem sets the afs service used by fs vendors
func WithFileSystem(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithJobDAO sets the job store
func WithJobDAO(jobs dao.Service[string, model.Job]) Option {
	return func(s *Service) {
		s.jobs = jobs
	}
}

// WithServerDAO sets the server store
func WithServerDAO(servers dao.Service[string, model.Server]) Option {
	return func(s *Service) {
		s.servers = servers
	}
}

// WithLoggerDAO sets the logger store
func WithLoggerDAO(loggers dao.Service[string, model.Logger]) Option {
	return func(s *Service) {
		s.loggers = loggers
	}
}

// WithAccountDAO sets the logger account store
func WithAccountDAO(accounts dao.Service[string, model.LoggerAccount]) Option {
	return func(s *Service) {
		s.accounts = accounts
	}
}

// WithQueue sets the work queue
func WithQueue(queue messaging.Queue[model.Dispatch]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithProvider sets the remote logger provider, enabling provisioning
func WithProvider(provider provision.Provider) Option {
	return func(s *Service) {
		s.provider = provider
	}
}

// WithForwarder sets the syslog forwarder used by job messages
func WithForwarder(forwarder syslog.Forwarder) Option {
	return func(s *Service) {
		s.forwarder = forwarder
	}
}

// WithEvents sets the lifecycle event publisher
func WithEvents(publisher *event.Publisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

// WithTracingExporter installs a custom SpanExporter (OTLP, Jaeger, ...) instead of the
// configured stdout exporter. Only the first installation in a process takes effect.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.Install(serviceName, serviceVersion, exporter); err != nil {
			s.initErrors = append(s.initErrors, err)
		}
	}
}
