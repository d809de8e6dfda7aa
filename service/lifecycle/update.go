package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/viant/thurgood/internal/clock"
	"github.com/viant/thurgood/internal/idgen"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao/criteria"
	"github.com/viant/thurgood/service/event"
	"go.uber.org/zap"
)

// patchable lists job fields an operator may overwrite
var patchable = map[string]bool{
	"status":    true,
	"email":     true,
	"platform":  true,
	"language":  true,
	"loggerId":  true,
	"userId":    true,
	"codeUrl":   true,
	"options":   true,
	"startTime": true,
	"endTime":   true,
}

// Update overwrites job fields unconditionally in one atomic step.
//
// Status is not checked against the job state: setting complete here leaves any
// bound server reserved; use Complete to release it.
func (s *Service) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.Job, error) {
	if !idgen.Valid(id) {
		return nil, &model.ValidationError{Field: "id", Value: id}
	}
	for key := range patch {
		if !patchable[key] {
			return nil, &model.ValidationError{Field: key}
		}
	}
	data, err := json.Marshal(patch)
	if err != nil {
		return nil, &model.ValidationError{Field: "patch", Value: err.Error()}
	}
	// decoding upfront rejects ill-typed values before the store is touched
	if err = json.Unmarshal(data, &model.Job{}); err != nil {
		return nil, &model.ValidationError{Field: "patch", Value: err.Error()}
	}

	now := clock.Now()
	var applyErr error
	updated, err := s.jobs.FindAndModify(ctx, criteria.JobByID(id), func(job *model.Job) {
		applyErr = applyPatch(job, patch, data, now)
	})
	if err != nil {
		return nil, notFoundOr(model.KindJob, id, "update job", err)
	}
	if applyErr != nil {
		return nil, &model.StoreError{Op: "update job", Err: applyErr}
	}
	if status, ok := patch["status"]; ok {
		s.logger.Warn("job status overwritten", zap.String("jobId", id), zap.Any("status", status))
	}
	s.emit(ctx, event.NewEvent(event.JobUpdated, id, "", string(updated.Status)))
	return updated, nil
}

// applyPatch decodes data over job keeping identity and creation time.
// Patched maps and pointers are replaced, not merged into.
func applyPatch(job *model.Job, patch map[string]interface{}, data []byte, now time.Time) error {
	candidate := job.Clone()
	if _, ok := patch["options"]; ok {
		candidate.Options = nil
	}
	if _, ok := patch["startTime"]; ok {
		candidate.StartTime = nil
	}
	if _, ok := patch["endTime"]; ok {
		candidate.EndTime = nil
	}
	if err := json.Unmarshal(data, candidate); err != nil {
		return fmt.Errorf("failed to apply patch: %w", err)
	}
	candidate.ID = job.ID
	candidate.CreatedAt = job.CreatedAt
	candidate.UpdatedAt = now
	*job = *candidate
	return nil
}
