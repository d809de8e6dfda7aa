package model

import "time"

// JobStatus represents the lifecycle status of a job. Besides the statuses
// below any operator supplied value is accepted.
type JobStatus string

const (
	JobStatusCreated   JobStatus = "created"
	JobStatusSubmitted JobStatus = "submitted"
	JobStatusComplete  JobStatus = "complete"
)

// Job represents a unit of work dispatched to a matching server
type Job struct {
	ID        string                 `json:"_id" yaml:"id"`
	Platform  string                 `json:"platform" yaml:"platform"`
	Language  string                 `json:"language" yaml:"language"`
	Status    JobStatus              `json:"status" yaml:"status"`
	LoggerID  string                 `json:"loggerId,omitempty" yaml:"loggerId,omitempty"`
	Email     string                 `json:"email,omitempty" yaml:"email,omitempty"`
	UserID    string                 `json:"userId,omitempty" yaml:"userId,omitempty"`
	CodeURL   string                 `json:"codeUrl,omitempty" yaml:"codeUrl,omitempty"`
	Options   map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
	CreatedAt time.Time              `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt" yaml:"updatedAt"`
	StartTime *time.Time             `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime   *time.Time             `json:"endTime,omitempty" yaml:"endTime,omitempty"`
}

// Validate checks attributes required to match the job against a server
func (j *Job) Validate() error {
	if j == nil {
		return &ValidationError{Field: "job"}
	}
	if j.Platform == "" {
		return &ValidationError{Field: "platform"}
	}
	if j.Language == "" {
		return &ValidationError{Field: "language"}
	}
	return nil
}

// Init assigns creation defaults
func (j *Job) Init(id string, now time.Time) {
	if j.ID == "" {
		j.ID = id
	}
	if j.Status == "" {
		j.Status = JobStatusCreated
	}
	j.CreatedAt = now
	j.UpdatedAt = now
}

// MarkSubmitted transitions the job after its server has been reserved
func (j *Job) MarkSubmitted(now time.Time) {
	j.Status = JobStatusSubmitted
	j.UpdatedAt = now
}

// MarkComplete transitions the job to complete and records its end time
func (j *Job) MarkComplete(now time.Time) {
	j.Status = JobStatusComplete
	end := now
	j.EndTime = &end
	j.UpdatedAt = now
}

// JobKey returns job identity
func JobKey(j *Job) string { return j.ID }

// Clone returns a deep copy of the job
func (j *Job) Clone() *Job {
	ret := *j
	if j.Options != nil {
		ret.Options = make(map[string]interface{}, len(j.Options))
		for k, v := range j.Options {
			ret.Options[k] = v
		}
	}
	if j.StartTime != nil {
		start := *j.StartTime
		ret.StartTime = &start
	}
	if j.EndTime != nil {
		end := *j.EndTime
		ret.EndTime = &end
	}
	return &ret
}
