package lifecycle

import (
	"github.com/viant/thurgood/service/event"
	"github.com/viant/thurgood/service/metrics"
	"github.com/viant/thurgood/service/provision"
	"github.com/viant/thurgood/service/syslog"
	"go.uber.org/zap"
)

// Option customises the lifecycle service
type Option func(s *Service)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.Named("lifecycle")
		}
	}
}

// WithMetrics sets the metrics collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithProvisioner enables logger provisioning when a job names an unknown logger
func WithProvisioner(provisioner *provision.Service) Option {
	return func(s *Service) {
		s.provisioner = provisioner
	}
}

// WithForwarder forwards formatted job messages to the logger endpoint
func WithForwarder(forwarder syslog.Forwarder) Option {
	return func(s *Service) {
		s.forwarder = forwarder
	}
}

// WithEvents publishes lifecycle events
func WithEvents(publisher *event.Publisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

// CreateOption customises job creation
type CreateOption func(o *createOptions)

type createOptions struct {
	loggerName   string
	papertrailID string
}

// WithLoggerName resolves job logger by name, provisioning it when missing
func WithLoggerName(name string) CreateOption {
	return func(o *createOptions) {
		o.loggerName = name
	}
}

// WithPapertrailID sets remote id used when provisioning
func WithPapertrailID(id string) CreateOption {
	return func(o *createOptions) {
		o.papertrailID = id
	}
}
