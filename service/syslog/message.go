package syslog

import (
	"fmt"
	"strings"
	"time"

	"github.com/viant/thurgood/model"
)

// Facility represents syslog facility code
type Facility int

// Severity represents syslog severity code
type Severity int

const (
	DefaultFacility = Facility(1) // user
	DefaultSeverity = Severity(6) // info
	timestampLayout = "Jan _2 15:04:05"
)

var facilities = map[string]Facility{
	"kern": 0, "user": 1, "mail": 2, "daemon": 3, "auth": 4, "syslog": 5, "lpr": 6, "news": 7,
	"uucp": 8, "clock": 9, "authpriv": 10, "ftp": 11, "ntp": 12, "audit": 13, "alert": 14, "cron": 15,
	"local0": 16, "local1": 17, "local2": 18, "local3": 19, "local4": 20, "local5": 21, "local6": 22, "local7": 23,
}

var severities = map[string]Severity{
	"emerg": 0, "emergency": 0, "alert": 1, "crit": 2, "critical": 2, "err": 3, "error": 3,
	"warn": 4, "warning": 4, "notice": 5, "info": 6, "information": 6, "debug": 7,
}

// ParseFacility resolves facility name, empty name resolves to user
func ParseFacility(name string) (Facility, error) {
	if name == "" {
		return DefaultFacility, nil
	}
	if ret, ok := facilities[strings.ToLower(name)]; ok {
		return ret, nil
	}
	return 0, &model.ValidationError{Field: "facility", Value: name}
}

// ParseSeverity resolves severity name, empty name resolves to info
func ParseSeverity(name string) (Severity, error) {
	if name == "" {
		return DefaultSeverity, nil
	}
	if ret, ok := severities[strings.ToLower(name)]; ok {
		return ret, nil
	}
	return 0, &model.ValidationError{Field: "severity", Value: name}
}

// Message represents a single syslog entry
type Message struct {
	Facility Facility
	Severity Severity
	Host     string
	Time     time.Time
	Text     string
}

// Priority returns PRI value
func (m *Message) Priority() int {
	return int(m.Facility)*8 + int(m.Severity)
}

// Format renders the message as a BSD syslog line: <PRI>Mmm dd hh:mm:ss HOST TEXT
func (m *Message) Format() string {
	host := m.Host
	if host == "" {
		host = "-"
	}
	return fmt.Sprintf("<%d>%s %s %s", m.Priority(), m.Time.Format(timestampLayout), host, m.Text)
}

// NewMessage creates a message from facility and severity names
func NewMessage(facility, severity, host, text string, now time.Time) (*Message, error) {
	f, err := ParseFacility(facility)
	if err != nil {
		return nil, err
	}
	s, err := ParseSeverity(severity)
	if err != nil {
		return nil, err
	}
	return &Message{Facility: f, Severity: s, Host: host, Time: now, Text: text}, nil
}
