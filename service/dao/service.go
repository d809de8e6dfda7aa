package dao

import (
	"context"
)

// Service is the entity store contract. FindAndModify is the only concurrency
// control primitive offered to callers: the filter is evaluated and the mutation
// applied as one atomic step, so two concurrent calls never modify the same
// document on the strength of the same match.
type Service[K comparable, T any] interface {
	// Insert stores a new entity, ErrDuplicate when key already exists
	Insert(ctx context.Context, t *T) error

	// Load returns a copy of entity by key, ErrNotFound when absent
	Load(ctx context.Context, id K) (*T, error)

	// FindOne returns a copy of the first entity matching filter, ErrNotFound when none matches
	FindOne(ctx context.Context, filter Filter[T]) (*T, error)

	// FindAndModify atomically applies mutation to the first entity matching filter
	// and returns the post-mutation copy, ErrNotFound when none matches
	FindAndModify(ctx context.Context, filter Filter[T], mutation Mutation[T]) (*T, error)

	// Find returns copies of entities matching query
	Find(ctx context.Context, query *Query[T]) ([]*T, error)

	Delete(ctx context.Context, id K) error
}
