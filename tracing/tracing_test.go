package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestStart(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, Install("thurgood", "0.0.1", exporter))
	require.NoError(t, Setup(&Config{}), "disabled config is a no-op")
	assert.True(t, Installed())

	outputFile := filepath.Join(t.TempDir(), "spans.json")
	require.NoError(t, Setup(&Config{Enabled: true, OutputFile: outputFile}))
	_, err := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(err), "output file is not opened once a provider is installed")

	_, span := Start(context.Background(), "allocator.Submit")
	span.Job("j1").Server("s1").Set(AttrOutcome, "")
	span.End(nil)

	_, failed := StartServer(context.Background(), "GET /api/1/jobs/{id}/complete")
	failed.End(errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "allocator.Submit", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String(AttrJobID, "j1"),
		attribute.String(AttrServerID, "s1"),
	}, spans[0].Attributes)
	assert.Equal(t, trace.SpanKindServer, spans[1].SpanKind)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "boom", spans[1].Status.Description)

	var nop *Span
	nop.Job("x").End(nil)
}
