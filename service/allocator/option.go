package allocator

import (
	"github.com/viant/thurgood/service/metrics"
	"go.uber.org/zap"
)

// Option customises the allocator service
type Option func(s *Service)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.Named("allocator")
		}
	}
}

// WithMetrics sets the metrics collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}
