package model

import "time"

// Dispatch is the work queue payload. Allocation publishes JobID and Type
// (the job language) so that a worker of that type picks the reserved job up;
// relayed operator messages carry Body only.
type Dispatch struct {
	JobID       string    `json:"jobId,omitempty"`
	Type        string    `json:"type,omitempty"`
	Body        string    `json:"body,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// NewDispatch creates a dispatch message for a reserved server
func NewDispatch(server *Server, job *Job, now time.Time) *Dispatch {
	return &Dispatch{JobID: server.JobID, Type: job.Language, PublishedAt: now}
}

// NewRelay creates a passthrough message
func NewRelay(body string, now time.Time) *Dispatch {
	return &Dispatch{Body: body, PublishedAt: now}
}
