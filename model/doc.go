// Package model defines the documents persisted by the dispatcher (jobs,
// servers, loggers and logger accounts), the dispatch message published to the
// work queue and the error taxonomy shared by every service layer.
//
// A Job never references the Server executing it; the binding is kept on the
// Server side (Server.JobID) so that releasing a server on completion is a
// single lookup by job id.
package model
