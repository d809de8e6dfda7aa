// Package event publishes job and server lifecycle events onto a queue so
// that observers can follow state changes without polling the stores.
package event
