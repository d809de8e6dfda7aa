package lifecycle

import (
	"context"

	"github.com/viant/thurgood/internal/clock"
	"github.com/viant/thurgood/internal/idgen"
	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/dao/criteria"
	"github.com/viant/thurgood/service/event"
	"go.uber.org/zap"
)

// ServerQuery represents server listing parameters
type ServerQuery struct {
	Status   string
	Platform string
	Language string
	Skip     int
	Limit    int
}

// RegisterServer adds a worker server to the pool, available unless stated otherwise
func (s *Service) RegisterServer(ctx context.Context, server *model.Server) (*model.Server, error) {
	if err := server.Validate(); err != nil {
		return nil, err
	}
	if server.ID != "" && !idgen.Valid(server.ID) {
		return nil, &model.ValidationError{Field: "id", Value: server.ID}
	}
	server = server.Clone()
	server.Init(idgen.New(), clock.Now())
	if err := s.servers.Insert(ctx, server); err != nil {
		return nil, insertError(model.KindServer, server.ID, "insert server", err)
	}
	s.logger.Info("server registered",
		zap.String("serverId", server.ID),
		zap.Strings("languages", server.Languages),
		zap.String("platform", server.Platform))
	s.emit(ctx, event.NewEvent(event.ServerRegistered, "", server.ID, string(server.Status)))
	return server, nil
}

// GetServer returns server by id
func (s *Service) GetServer(ctx context.Context, id string) (*model.Server, error) {
	if !idgen.Valid(id) {
		return nil, &model.ValidationError{Field: "id", Value: id}
	}
	ret, err := s.servers.Load(ctx, id)
	if err != nil {
		return nil, notFoundOr(model.KindServer, id, "load server", err)
	}
	return ret, nil
}

// ListServers returns servers matching query
func (s *Service) ListServers(ctx context.Context, query *ServerQuery) ([]*model.Server, error) {
	if query == nil {
		query = &ServerQuery{}
	}
	filter := criteria.Servers(criteria.ServerFields{Status: query.Status, Platform: query.Platform, Language: query.Language})
	ret, err := s.servers.Find(ctx, &dao.Query[model.Server]{Filter: filter, Skip: query.Skip, Limit: query.Limit})
	if err != nil {
		return nil, &model.StoreError{Op: "list servers", Err: err}
	}
	return ret, nil
}
