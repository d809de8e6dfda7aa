package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/viant/thurgood"

// Span attribute keys
const (
	AttrJobID    = "job.id"
	AttrServerID = "server.id"
	AttrOutcome  = "outcome"
)

// Config represents tracing settings
type Config struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// OutputFile receives stdout exporter output, empty writes to os.Stdout
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

var (
	installMu  sync.Mutex
	installed  bool
	installErr error
)

// Installed reports whether a tracer provider has been installed
func Installed() bool {
	installMu.Lock()
	defer installMu.Unlock()
	return installed
}

// Setup installs the stdout exporter when tracing is enabled and nothing is installed yet
func Setup(cfg *Config) error {
	if cfg == nil || !cfg.Enabled || Installed() {
		return nil
	}
	var w io.Writer = os.Stdout
	var f *os.File
	if cfg.OutputFile != "" {
		var err error
		if f, err = os.Create(cfg.OutputFile); err != nil {
			return err
		}
		w = f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err == nil {
		var applied bool
		if applied, err = install(cfg.ServiceName, cfg.ServiceVersion, exporter); applied {
			return nil
		}
	}
	if f != nil {
		_ = f.Close()
	}
	return err
}

// Install registers exporter with the global tracer provider. Only the first call takes effect.
func Install(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	_, err := install(serviceName, serviceVersion, exporter)
	return err
}

func install(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (bool, error) {
	if exporter == nil {
		return false, nil
	}
	installMu.Lock()
	defer installMu.Unlock()
	if installed {
		return false, installErr
	}
	installed = true
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		installErr = err
		return false, err
	}
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	))
	return true, nil
}

// Span wraps an OpenTelemetry span; a nil *Span is a no-op
type Span struct {
	span trace.Span
}

// Set records a string attribute
func (s *Span) Set(key, value string) *Span {
	if s == nil || value == "" {
		return s
	}
	s.span.SetAttributes(attribute.String(key, value))
	return s
}

// Job records the job id
func (s *Span) Job(jobID string) *Span { return s.Set(AttrJobID, jobID) }

// Server records the server id
func (s *Span) Server(serverID string) *Span { return s.Set(AttrServerID, serverID) }

// End records err (or OK status) and ends the span
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

// Start starts an internal span for a dispatcher operation
func Start(ctx context.Context, operation string) (context.Context, *Span) {
	return start(ctx, operation, trace.SpanKindInternal)
}

// StartServer starts a span for an inbound request
func StartServer(ctx context.Context, operation string) (context.Context, *Span) {
	return start(ctx, operation, trace.SpanKindServer)
}

func start(ctx context.Context, name string, kind trace.SpanKind) (context.Context, *Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(kind))
	return ctx, &Span{span: span}
}
