package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viant/thurgood/service/lifecycle"
	"github.com/viant/thurgood/tracing"
	"go.uber.org/zap"
)

// DefaultPrefix is the API mount point
const DefaultPrefix = "/api/1"

// Handler serves lifecycle operations over HTTP
type Handler struct {
	service  *lifecycle.Service
	logger   *zap.Logger
	gatherer prometheus.Gatherer
	prefix   string
}

// Option customises handler
type Option func(h *Handler)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger.Named("api")
		}
	}
}

// WithGatherer exposes gatherer metrics on /metrics
func WithGatherer(gatherer prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.gatherer = gatherer
	}
}

// WithPrefix sets the API mount point
func WithPrefix(prefix string) Option {
	return func(h *Handler) {
		if prefix != "" {
			h.prefix = prefix
		}
	}
}

// Router returns the HTTP routes
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		h.ok(w, "ok", nil)
	})
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	r.Route(h.prefix, func(r chi.Router) {
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.listJobs)
			r.Post("/", h.createJob)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getJob)
				r.Put("/", h.updateJob)
				r.Put("/submit", h.submitJob)
				r.Post("/submit", h.submitJob)
				r.Get("/complete", h.completeJob)
				r.Post("/message", h.messageJob)
				r.Post("/publish", h.publish)
			})
		})
		r.Route("/servers", func(r chi.Router) {
			r.Get("/", h.listServers)
			r.Post("/", h.registerServer)
			r.Get("/{id}", h.getServer)
		})
	})
	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ctx, span := tracing.StartServer(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End(nil)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		span.Set("http.status", strconv.Itoa(ww.Status()))
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(started)),
			zap.String("requestId", middleware.GetReqID(r.Context())))
	})
}

// New creates HTTP handler
func New(service *lifecycle.Service, options ...Option) *Handler {
	ret := &Handler{service: service, logger: zap.NewNop(), prefix: DefaultPrefix}
	for _, option := range options {
		option(ret)
	}
	return ret
}
