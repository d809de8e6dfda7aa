package event

import "time"

// Type represents lifecycle event type
type Type string

const (
	JobCreated       Type = "job.created"
	JobSubmitted     Type = "job.submitted"
	JobCompleted     Type = "job.completed"
	JobUpdated       Type = "job.updated"
	ServerRegistered Type = "server.registered"
)

// Event represents a job or server state change
type Event struct {
	Type      Type                   `json:"type"`
	JobID     string                 `json:"jobId,omitempty"`
	ServerID  string                 `json:"serverId,omitempty"`
	Status    string                 `json:"status,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent creates an event
func NewEvent(eventType Type, jobID, serverID, status string) *Event {
	return &Event{
		Type:     eventType,
		JobID:    jobID,
		ServerID: serverID,
		Status:   status,
	}
}

// WithMetadata sets metadata entry
func (e *Event) WithMetadata(key string, value interface{}) *Event {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}
