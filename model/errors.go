package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is matched by ValidationError
	ErrInvalidID = errors.New("invalid identifier")
	// ErrNotFound is matched by NotFoundError
	ErrNotFound = errors.New("not found")
	// ErrNoCapacity is matched by NoCapacityError
	ErrNoCapacity = errors.New("no available servers; retry later")
	// ErrConflict is matched by ConflictError
	ErrConflict = errors.New("already exists")
)

// Entity kinds reported by NotFoundError
const (
	KindJob    = "job"
	KindServer = "server"
	KindLogger = "logger"
)

// ValidationError reports a malformed identifier or missing attribute. No store access happens
// before it is returned.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %v", e.Field)
	}
	return fmt.Sprintf("invalid %v: %q", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidID }

// NotFoundError reports a missing job, server or logger
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%v not found", e.Kind)
	}
	return fmt.Sprintf("%v %v not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a client supplied id that is already taken
type ConflictError struct {
	Kind string
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v %v %v", e.Kind, e.ID, ErrConflict)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NoCapacityError reports that no available server matched the job; callers own resubmission.
type NoCapacityError struct {
	JobID    string
	Language string
	Platform string
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("job %v (%v/%v): %v", e.JobID, e.Language, e.Platform, ErrNoCapacity)
}

func (e *NoCapacityError) Unwrap() error { return ErrNoCapacity }

// DispatchPublishError reports a work queue failure after a successful reservation.
// The reservation is kept: the job stays submitted and the server reserved.
type DispatchPublishError struct {
	JobID    string
	ServerID string
	Err      error
}

func (e *DispatchPublishError) Error() string {
	return fmt.Sprintf("job %v reserved server %v but dispatch publish failed: %v", e.JobID, e.ServerID, e.Err)
}

func (e *DispatchPublishError) Unwrap() error { return e.Err }

// ReleaseError reports a failure to release the server of a completed job.
// The job completion is not reverted.
type ReleaseError struct {
	JobID string
	Err   error
}

func (e *ReleaseError) Error() string {
	return fmt.Sprintf("job %v completed but server release failed: %v", e.JobID, e.Err)
}

func (e *ReleaseError) Unwrap() error { return e.Err }

// StoreError wraps any other entity store failure
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound returns true if err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
