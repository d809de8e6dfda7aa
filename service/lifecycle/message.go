package lifecycle

import (
	"context"
	"fmt"

	"github.com/viant/thurgood/internal/clock"
	"github.com/viant/thurgood/internal/idgen"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/syslog"
	"go.uber.org/zap"
)

// MessageRequest represents a log line sent to the job logger
type MessageRequest struct {
	Message  string `json:"message"`
	Facility string `json:"facility,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// Message formats a syslog line addressed to the job logger and forwards it when a forwarder is configured
func (s *Service) Message(ctx context.Context, id string, request *MessageRequest) (string, error) {
	if !idgen.Valid(id) {
		return "", &model.ValidationError{Field: "id", Value: id}
	}
	if request == nil || request.Message == "" {
		return "", &model.ValidationError{Field: "message"}
	}
	job, err := s.jobs.Load(ctx, id)
	if err != nil {
		return "", notFoundOr(model.KindJob, id, "load job", err)
	}
	if job.LoggerID == "" {
		return "", &model.NotFoundError{Kind: model.KindLogger}
	}
	logger, err := s.loggers.Load(ctx, job.LoggerID)
	if err != nil {
		return "", notFoundOr(model.KindLogger, job.LoggerID, "load logger", err)
	}
	msg, err := syslog.NewMessage(request.Facility, request.Severity, logger.Host(), request.Message, clock.Now())
	if err != nil {
		return "", err
	}
	line := msg.Format()
	if s.forwarder != nil {
		if err = s.forwarder.Forward(ctx, logger.Host(), line); err != nil {
			s.logger.Error("failed to forward job message", zap.String("jobId", id), zap.String("host", logger.Host()), zap.Error(err))
			return line, fmt.Errorf("failed to forward message for job %v: %w", id, err)
		}
	}
	return line, nil
}
