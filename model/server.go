package model

import "time"

// ServerStatus represents reservation state of a worker server
type ServerStatus string

const (
	ServerStatusAvailable ServerStatus = "available"
	ServerStatusReserved  ServerStatus = "reserved"
)

// Server represents a worker able to execute jobs for a set of languages on a platform.
// JobID is a weak back-reference to the job holding the reservation, empty when available.
type Server struct {
	ID        string       `json:"_id" yaml:"id"`
	Name      string       `json:"name,omitempty" yaml:"name,omitempty"`
	Languages []string     `json:"languages" yaml:"languages"`
	Platform  string       `json:"platform" yaml:"platform"`
	Status    ServerStatus `json:"status" yaml:"status"`
	JobID     string       `json:"jobId" yaml:"jobId"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" yaml:"updatedAt"`
}

// HasLanguage returns true if server supports supplied language
func (s *Server) HasLanguage(language string) bool {
	for _, candidate := range s.Languages {
		if candidate == language {
			return true
		}
	}
	return false
}

// Validate checks server registration attributes
func (s *Server) Validate() error {
	if s == nil {
		return &ValidationError{Field: "server"}
	}
	if s.Platform == "" {
		return &ValidationError{Field: "platform"}
	}
	if len(s.Languages) == 0 {
		return &ValidationError{Field: "languages"}
	}
	switch s.Status {
	case "", ServerStatusAvailable:
		if s.JobID != "" {
			return &ValidationError{Field: "jobId", Value: s.JobID}
		}
	case ServerStatusReserved:
	default:
		return &ValidationError{Field: "status", Value: string(s.Status)}
	}
	return nil
}

// Init assigns registration defaults
func (s *Server) Init(id string, now time.Time) {
	if s.ID == "" {
		s.ID = id
	}
	if s.Status == "" {
		s.Status = ServerStatusAvailable
	}
	s.CreatedAt = now
	s.UpdatedAt = now
}

// Reserve binds the server to a job
func (s *Server) Reserve(jobID string, now time.Time) {
	s.JobID = jobID
	s.Status = ServerStatusReserved
	s.UpdatedAt = now
}

// Release returns the server to the available pool
func (s *Server) Release(now time.Time) {
	s.JobID = ""
	s.Status = ServerStatusAvailable
	s.UpdatedAt = now
}

// ServerKey returns server identity
func ServerKey(s *Server) string { return s.ID }

// Clone returns a deep copy of the server
func (s *Server) Clone() *Server {
	ret := *s
	ret.Languages = append([]string(nil), s.Languages...)
	return &ret
}
