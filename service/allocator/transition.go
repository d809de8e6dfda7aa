package allocator

import (
	"errors"
	"time"

	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/metrics"
)

func reserve(jobID string, now time.Time) dao.Mutation[model.Server] {
	return func(s *model.Server) { s.Reserve(jobID, now) }
}

func release(now time.Time) dao.Mutation[model.Server] {
	return func(s *model.Server) { s.Release(now) }
}

func markSubmitted(now time.Time) dao.Mutation[model.Job] {
	return func(j *model.Job) { j.MarkSubmitted(now) }
}

func markComplete(now time.Time) dao.Mutation[model.Job] {
	return func(j *model.Job) { j.MarkComplete(now) }
}

// jobError maps a job store failure onto the error taxonomy
func jobError(op, jobID string, err error) error {
	if errors.Is(err, dao.ErrNotFound) {
		return &model.NotFoundError{Kind: model.KindJob, ID: jobID}
	}
	return &model.StoreError{Op: op, Err: err}
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	var (
		validation *model.ValidationError
		notFound   *model.NotFoundError
		capacity   *model.NoCapacityError
		publish    *model.DispatchPublishError
		release    *model.ReleaseError
	)
	switch {
	case errors.As(err, &validation):
		return metrics.OutcomeInvalid
	case errors.As(err, &notFound):
		return metrics.OutcomeNotFound
	case errors.As(err, &capacity):
		return metrics.OutcomeNoCapacity
	case errors.As(err, &publish):
		return metrics.OutcomePublishErr
	case errors.As(err, &release):
		return metrics.OutcomeReleaseErr
	}
	return metrics.OutcomeStoreErr
}
