package store

import (
	"context"
	"sync"

	"github.com/viant/thurgood/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service.
// It keeps entities of type *T mapped by a comparable key K.
// The key is obtained from the supplied keySelector function.
//
// Every method works on copies: entities implementing Clone() *T are deep
// copied, others are copied by value. FindAndModify holds the write lock while
// scanning and mutating, which makes reservation a single atomic step. Scan
// order is insertion order.
type MemoryStore[K comparable, T any] struct {
	mu          sync.Mutex
	records     map[K]*T
	order       []K
	keySelector func(*T) K
}

var _ dao.Service[string, struct{}] = (*MemoryStore[string, struct{}])(nil)

// NewMemoryStore creates a new MemoryStore.
// keySelector extracts the entity key (usually the ID field) from a value.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
	}
}

// Insert stores a new record
func (s *MemoryStore[K, T]) Insert(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	var zero K
	if key == zero {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; ok {
		return dao.ErrDuplicate
	}
	s.records[key] = clone(v)
	s.order = append(s.order, key)
	return nil
}

// Load returns a record by key.
func (s *MemoryStore[K, T]) Load(ctx context.Context, key K) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return clone(v), nil
}

// FindOne returns first record matching filter
func (s *MemoryStore[K, T]) FindOne(ctx context.Context, filter dao.Filter[T]) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := s.first(filter); v != nil {
		return clone(v), nil
	}
	return nil, dao.ErrNotFound
}

// FindAndModify atomically mutates first record matching filter
func (s *MemoryStore[K, T]) FindAndModify(ctx context.Context, filter dao.Filter[T], mutation dao.Mutation[T]) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.first(filter)
	if v == nil {
		return nil, dao.ErrNotFound
	}
	key := s.keySelector(v)
	modified := clone(v)
	if mutation != nil {
		mutation(modified)
	}
	if s.keySelector(modified) != key {
		return nil, dao.ErrKeyChanged
	}
	s.records[key] = modified
	return clone(modified), nil
}

// Find returns records matching query
func (s *MemoryStore[K, T]) Find(ctx context.Context, query *dao.Query[T]) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	filter := query.FilterOf()
	out := make([]*T, 0, len(s.order))
	for _, key := range s.order {
		v := s.records[key]
		if filter.Matches(v) {
			out = append(out, clone(v))
		}
	}
	s.mu.Unlock()
	return query.Apply(out), nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(ctx context.Context, key K) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	for i, candidate := range s.order {
		if candidate == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore[K, T]) first(filter dao.Filter[T]) *T {
	for _, key := range s.order {
		if v := s.records[key]; filter.Matches(v) {
			return v
		}
	}
	return nil
}

type cloner[T any] interface {
	Clone() *T
}

func clone[T any](v *T) *T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}
	ret := *v
	return &ret
}
