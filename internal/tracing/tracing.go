// Package tracing exports the spans of a benchmark session to a file.
package tracing

import (
	"context"
	"errors"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/sumbench/internal/errors"
)

// FileExporter writes every ended span to a file as one JSON document.
type FileExporter struct {
	file     *os.File
	provider *sdktrace.TracerProvider
}

// Create truncates path and returns an exporter writing to it. Spans are
// exported synchronously, so the file is complete once Close returns.
func Create(path, version string) (*FileExporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "creating trace file")
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, apperrors.WrapError(err, "creating span exporter")
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", "sumbench"),
		attribute.String("service.version", version),
	)
	return &FileExporter{
		file:     f,
		provider: sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter), sdktrace.WithResource(res)),
	}, nil
}

// Provider returns the tracer provider feeding the file.
func (e *FileExporter) Provider() trace.TracerProvider { return e.provider }

// Close flushes pending spans and closes the file.
func (e *FileExporter) Close(ctx context.Context) error {
	return errors.Join(e.provider.Shutdown(ctx), e.file.Close())
}
