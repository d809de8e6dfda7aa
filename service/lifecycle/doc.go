// Package lifecycle exposes job and server operations: create, read, list,
// submit, complete, update, log messaging and queue relay.
//
// Submit and Complete delegate to the allocator, which owns the job–server
// binding. Update is an unconditional operator escape hatch: it may set any
// status, including complete, without touching the bound server.
package lifecycle
