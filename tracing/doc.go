// Package tracing integrates OpenTelemetry with the dispatcher so that job
// submission and completion can be followed across the store and queue calls
// they fan out to. Applications that never call Init get no-op spans.
package tracing
