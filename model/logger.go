package model

import (
	"strconv"
	"time"
)

// Logger represents a remote log destination (syslog endpoint) a job can write to
type Logger struct {
	ID              string    `json:"_id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	LoggerAccountID string    `json:"loggerAccountId,omitempty" yaml:"loggerAccountId,omitempty"`
	PapertrailID    string    `json:"papertrailId,omitempty" yaml:"papertrailId,omitempty"`
	SyslogHostname  string    `json:"syslogHostname" yaml:"syslogHostname"`
	SyslogPort      int       `json:"syslogPort" yaml:"syslogPort"`
	CreatedAt       time.Time `json:"createdAt" yaml:"createdAt"`
}

// Host returns syslog destination in host:port form
func (l *Logger) Host() string {
	return l.SyslogHostname + ":" + strconv.Itoa(l.SyslogPort)
}

// LoggerKey returns logger identity
func LoggerKey(l *Logger) string { return l.ID }

// LoggerAccount represents an account on the remote logging provider owning loggers
type LoggerAccount struct {
	ID                 string    `json:"_id" yaml:"id"`
	Name               string    `json:"name" yaml:"name"`
	Email              string    `json:"email" yaml:"email"`
	PapertrailID       string    `json:"papertrailId" yaml:"papertrailId"`
	PapertrailAPIToken string    `json:"papertrailApiToken,omitempty" yaml:"papertrailApiToken,omitempty"`
	CreatedAt          time.Time `json:"createdAt" yaml:"createdAt"`
}

// LoggerAccountKey returns account identity
func LoggerAccountKey(a *LoggerAccount) string { return a.ID }
