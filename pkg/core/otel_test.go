package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

func TestNewResource_ServiceIdentity(t *testing.T) {
	res, err := newResource(context.Background())
	require.NoError(t, err)

	set := res.Set()

	name, ok := set.Value(semconv.ServiceNameKey)
	require.True(t, ok, "resource should carry service.name")
	assert.Equal(t, "canvas-gateway-api", name.AsString())

	version, ok := set.Value(semconv.ServiceVersionKey)
	require.True(t, ok, "resource should carry service.version")
	assert.Equal(t, ServiceVersion, version.AsString())
}

func TestNewConn_HonorsInsecureSetting(t *testing.T) {
	// grpc.NewClient does not dial eagerly, so both credential paths can be
	// exercised without a collector.
	for _, insecureExporter := range []bool{true, false} {
		cfg := NewConfig(
			WithOtlpEndpoint("localhost:4317"),
			WithOtlpInsecure(insecureExporter),
		)

		conn, err := newConn(&cfg)
		require.NoError(t, err)
		require.NotNil(t, conn)
		_ = conn.Close()
	}
}

func TestOtel_EmitsSpan(t *testing.T) {
	ctx := context.Background()

	rec := tracetest.NewSpanRecorder()

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.Empty()),
		sdktrace.WithSpanProcessor(rec),
	)
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	otel.SetTracerProvider(tp)

	tr := otel.Tracer("test")
	_, span := tr.Start(ctx, "hello")
	span.End()

	result := rec.Ended()
	expected := 1

	require.Len(t, result, expected, "expected %d ended span(s)", expected)

	expectedName := "hello"
	resultName := result[0].Name()

	assert.Equal(t, expectedName, resultName, "span name should match")
}
