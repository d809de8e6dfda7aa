package dao

import "sort"

// Filter selects entities; a nil filter matches everything
type Filter[T any] func(t *T) bool

// Mutation modifies an entity in place
type Mutation[T any] func(t *T)

// Less orders two entities
type Less[T any] func(a, b *T) bool

// Query represents filtered, sorted and paginated read
type Query[T any] struct {
	Filter Filter[T]
	Sort   Less[T]
	Skip   int
	Limit  int
}

// Matches returns true if filter is nil or accepts t
func (f Filter[T]) Matches(t *T) bool {
	return f == nil || f(t)
}

// And combines filters
func And[T any](filters ...Filter[T]) Filter[T] {
	return func(t *T) bool {
		for _, filter := range filters {
			if !filter.Matches(t) {
				return false
			}
		}
		return true
	}
}

// Apply sorts and paginates candidates already matched by the query filter
func (q *Query[T]) Apply(candidates []*T) []*T {
	if q == nil {
		return candidates
	}
	if q.Sort != nil {
		sort.SliceStable(candidates, func(i, j int) bool {
			return q.Sort(candidates[i], candidates[j])
		})
	}
	if q.Skip > 0 {
		if q.Skip >= len(candidates) {
			return candidates[:0]
		}
		candidates = candidates[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(candidates) {
		candidates = candidates[:q.Limit]
	}
	return candidates
}

// FilterOf returns query filter, nil safe
func (q *Query[T]) FilterOf() Filter[T] {
	if q == nil {
		return nil
	}
	return q.Filter
}
