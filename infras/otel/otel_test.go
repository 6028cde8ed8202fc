package otel_test

import (
	"context"
	"errors"
	"testing"

	"atoll/config"
	"atoll/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpan(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScopeAttributes(t *testing.T) {
	span := recordSpan(t, func(scope otel.Scope) {
		scope.SetAttribute("booking.nights", 3)
		scope.SetAttributes(map[string]any{
			"booking.total":     300.0,
			"media.size":        int64(2048),
			"booking.available": true,
			"page.locales":      []string{"en", "ru"},
			"page.status":       struct{ Name string }{"draft"},
		})
	})

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), attrs["booking.nights"].AsInt64())
	assert.InDelta(t, 300.0, attrs["booking.total"].AsFloat64(), 0.001)
	assert.Equal(t, int64(2048), attrs["media.size"].AsInt64())
	assert.True(t, attrs["booking.available"].AsBool())
	assert.Equal(t, []string{"en", "ru"}, attrs["page.locales"].AsStringSlice())
	assert.Equal(t, "{draft}", attrs["page.status"].AsString())
}

func TestScopeErrors(t *testing.T) {
	t.Run("nil error leaves the span unset", func(t *testing.T) {
		span := recordSpan(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Empty(t, span.Events())
	})

	t.Run("error marks the span", func(t *testing.T) {
		span := recordSpan(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("property is not available for the selected dates"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "property is not available for the selected dates", span.Status().Description)
		assert.NotEmpty(t, span.Events())
	})
}

func TestNewWithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "atoll"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "service", "page.Publish")
	scope.AddEvent("snapshot")
	scope.End()

	assert.NotNil(t, ctx)
	assert.NoError(t, tracer.Shutdown(context.Background()))
}
