package outbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/outbox"
)

func TestHeadersRoundTrip(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := correlationid.NewContext(context.Background(), "corr-1")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	headers := outbox.BuildHeaders(ctx)
	assert.Equal(t, "corr-1", headers[correlationid.Header])
	assert.Contains(t, headers, "traceparent")

	got := outbox.ExtractContextFromHeaders(context.Background(), headers)
	id, ok := correlationid.FromContext(got)
	require.True(t, ok)
	assert.Equal(t, "corr-1", id)

	sc := trace.SpanContextFromContext(got)
	assert.Equal(t, traceID, sc.TraceID())
	assert.True(t, sc.IsRemote())
}

func TestBuildHeadersWithoutContext(t *testing.T) {
	assert.Empty(t, outbox.BuildHeaders(context.Background()))
}

func TestInjectCorrelationIDFromRecord(t *testing.T) {
	ctx := outbox.InjectCorrelationIDFromRecord(context.Background(), &kgo.Record{
		Headers: []kgo.RecordHeader{
			{Key: "traceparent", Value: []byte("x")},
			{Key: correlationid.Header, Value: []byte("corr-9")},
		},
	})
	id, ok := correlationid.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "corr-9", id)

	_, ok = correlationid.FromContext(outbox.InjectCorrelationIDFromRecord(context.Background(), &kgo.Record{}))
	assert.False(t, ok)
}
