// Package api binds lifecycle operations to HTTP.
//
// Every response uses the {success, message, data} envelope. Errors map to
// status codes by kind: validation 400, not found 404, no capacity 503,
// dispatch publish 502, release and store 500.
package api
