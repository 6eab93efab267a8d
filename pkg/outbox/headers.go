// Package outbox carries request context (trace and correlation id) through
// outbox message headers and the Kafka records built from them.
package outbox

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/correlationid"
)

// BuildHeaders captures the trace context and correlation id of ctx.
func BuildHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	if id, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = id
	}

	return headers
}

// ExtractContextFromHeaders is the inverse of BuildHeaders.
func ExtractContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(headers))

	if id, ok := headers[correlationid.Header]; ok {
		ctx = correlationid.NewContext(ctx, id)
	}

	return ctx
}

// InjectCorrelationIDFromRecord returns ctx carrying the correlation id of
// rec, or ctx unchanged when the record has none. Trace context of records
// is handled by the kotel hooks.
func InjectCorrelationIDFromRecord(ctx context.Context, rec *kgo.Record) context.Context {
	for _, h := range rec.Headers {
		if h.Key == correlationid.Header {
			return correlationid.NewContext(ctx, string(h.Value))
		}
	}
	return ctx
}
