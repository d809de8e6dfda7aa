package criteria

import (
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
)

// AvailableServer matches a free server supporting language on platform
func AvailableServer(language, platform string) dao.Filter[model.Server] {
	return func(s *model.Server) bool {
		return s.Status == model.ServerStatusAvailable &&
			s.Platform == platform &&
			s.HasLanguage(language)
	}
}

// ServerBoundTo matches the server holding jobID back-reference
func ServerBoundTo(jobID string) dao.Filter[model.Server] {
	return func(s *model.Server) bool {
		return jobID != "" && s.JobID == jobID
	}
}

// JobByID matches job by id
func JobByID(id string) dao.Filter[model.Job] {
	return func(j *model.Job) bool { return j.ID == id }
}

// LoggerByName matches logger by name
func LoggerByName(name string) dao.Filter[model.Logger] {
	return func(l *model.Logger) bool { return l.Name == name }
}

// AccountByName matches logger account by name
func AccountByName(name string) dao.Filter[model.LoggerAccount] {
	return func(a *model.LoggerAccount) bool { return a.Name == name }
}

// JobFields represents equality filters supported by job listing; empty fields match anything
type JobFields struct {
	Status   string
	UserID   string
	Platform string
	Language string
}

// Jobs matches jobs by supplied fields
func Jobs(fields JobFields) dao.Filter[model.Job] {
	return func(j *model.Job) bool {
		return matchesString(string(j.Status), fields.Status) &&
			matchesString(j.UserID, fields.UserID) &&
			matchesString(j.Platform, fields.Platform) &&
			matchesString(j.Language, fields.Language)
	}
}

// ServerFields represents equality filters supported by server listing
type ServerFields struct {
	Status   string
	Platform string
	Language string
}

// Servers matches servers by supplied fields
func Servers(fields ServerFields) dao.Filter[model.Server] {
	return func(s *model.Server) bool {
		if fields.Language != "" && !s.HasLanguage(fields.Language) {
			return false
		}
		return matchesString(string(s.Status), fields.Status) &&
			matchesString(s.Platform, fields.Platform)
	}
}

func matchesString(actual, expect string) bool {
	return expect == "" || actual == expect
}
