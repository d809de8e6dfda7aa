package fs

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/thurgood/service/dao"
)

// Service implements a filesystem-based entity store; every entity is a JSON
// document named after its key under the collection directory.
//
// FindAndModify is atomic within a process only: all collections created by
// the same process share one lock, concurrent processes writing the same base
// URL are not coordinated. Scan order is key order.
type Service[T any] struct {
	basePath    string
	fs          afs.Service
	keySelector func(*T) string
}

var storeMux sync.Mutex

// Ensure Service implements dao.Service
var _ dao.Service[string, struct{}] = (*Service[struct{}])(nil)

// Insert persists a new entity
func (s *Service[T]) Insert(ctx context.Context, entity *T) error {
	if entity == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(entity)
	if err := validKey(key); err != nil {
		return err
	}
	storeMux.Lock()
	defer storeMux.Unlock()
	exists, err := s.fs.Exists(ctx, s.entityPath(key))
	if err != nil {
		return fmt.Errorf("failed to check if %v exists: %w", key, err)
	}
	if exists {
		return dao.ErrDuplicate
	}
	return s.write(ctx, key, entity)
}

// Load retrieves an entity from the filesystem
func (s *Service[T]) Load(ctx context.Context, key string) (*T, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	storeMux.Lock()
	defer storeMux.Unlock()
	return s.read(ctx, s.entityPath(key))
}

// FindOne returns the first entity matching filter
func (s *Service[T]) FindOne(ctx context.Context, filter dao.Filter[T]) (*T, error) {
	storeMux.Lock()
	defer storeMux.Unlock()
	entity, err := s.first(ctx, filter)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// FindAndModify atomically mutates the first entity matching filter
func (s *Service[T]) FindAndModify(ctx context.Context, filter dao.Filter[T], mutation dao.Mutation[T]) (*T, error) {
	storeMux.Lock()
	defer storeMux.Unlock()
	entity, err := s.first(ctx, filter)
	if err != nil {
		return nil, err
	}
	key := s.keySelector(entity)
	if mutation != nil {
		mutation(entity)
	}
	if s.keySelector(entity) != key {
		return nil, dao.ErrKeyChanged
	}
	if err = s.write(ctx, key, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Find returns entities matching query
func (s *Service[T]) Find(ctx context.Context, query *dao.Query[T]) ([]*T, error) {
	storeMux.Lock()
	defer storeMux.Unlock()
	entities, err := s.scan(ctx, query.FilterOf(), 0)
	if err != nil {
		return nil, err
	}
	return query.Apply(entities), nil
}

// Delete removes an entity from the filesystem
func (s *Service[T]) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	storeMux.Lock()
	defer storeMux.Unlock()
	filePath := s.entityPath(key)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if %v exists: %w", key, err)
	}
	if !exists {
		return dao.ErrNotFound
	}
	if err := s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete %v: %w", filePath, err)
	}
	return nil
}

func (s *Service[T]) first(ctx context.Context, filter dao.Filter[T]) (*T, error) {
	entities, err := s.scan(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, dao.ErrNotFound
	}
	return entities[0], nil
}

// scan reads entities in key order, stopping after limit matches when limit > 0
func (s *Service[T]) scan(ctx context.Context, filter dao.Filter[T], limit int) ([]*T, error) {
	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list %v: %w", s.basePath, err)
	}
	var names []string
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		names = append(names, object.Name())
	}
	sort.Strings(names)
	var result []*T
	for _, name := range names {
		entity, err := s.read(ctx, url.Join(s.basePath, name))
		if err != nil {
			return nil, err
		}
		if !filter.Matches(entity) {
			continue
		}
		result = append(result, entity)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *Service[T]) read(ctx context.Context, filePath string) (*T, error) {
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if %v exists: %w", filePath, err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", filePath, err)
	}
	entity := new(T)
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %v: %w", filePath, err)
	}
	return entity, nil
}

func (s *Service[T]) write(ctx context.Context, key string, entity *T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %v: %w", key, err)
	}
	filePath := s.entityPath(key)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save %v: %w", filePath, err)
	}
	return nil
}

func (s *Service[T]) entityPath(key string) string {
	return url.Join(s.basePath, key+".json")
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.HasPrefix(key, ".") {
		return dao.ErrInvalidID
	}
	return nil
}

// New creates a filesystem entity store for collection under baseURL
func New[T any](ctx context.Context, fs afs.Service, baseURL, collection string, keySelector func(*T) string) (*Service[T], error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if collection == "" {
		return nil, fmt.Errorf("collection cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	basePath := url.Join(url.Normalize(baseURL, file.Scheme), collection)
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create collection directory %v: %w", basePath, err)
		}
	}
	return &Service[T]{
		basePath:    basePath,
		fs:          fs,
		keySelector: keySelector,
	}, nil
}
