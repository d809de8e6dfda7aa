// Package syslog formats BSD (RFC 3164) syslog lines for job loggers and
// forwards them to the logger's remote endpoint.
package syslog
