// Package allocator owns the job–server binding and is the only service
// allowed to move a server between available and reserved.
//
// Submit reserves a matching server with a single atomic find-and-modify,
// marks the job submitted and publishes a dispatch message. Complete marks the
// job complete and releases the server bound to it. The store's atomic
// find-and-modify is the sole concurrency control: the package holds no locks
// and never retries; callers own retry policy.
package allocator
