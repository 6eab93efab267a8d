package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/config"
)

func TestInitTracerWithoutCollector(t *testing.T) {
	cleanup, err := InitTracer(context.Background(), config.Otel{})
	require.NoError(t, err)
	require.NoError(t, cleanup(context.Background()))

	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())
}

func TestResourceAttributes(t *testing.T) {
	t.Run("Should default the service name", func(t *testing.T) {
		attrs := resourceAttributes(config.Otel{})

		require.Len(t, attrs, 1)
		assert.Equal(t, semconv.ServiceName(defaultServiceName), attrs[0])
	})

	t.Run("Should add kubernetes attributes", func(t *testing.T) {
		attrs := resourceAttributes(config.Otel{
			ServiceName:  "catalog-relay",
			K8sPodName:   "relay-0",
			K8sNamespace: "shop",
		})

		assert.Equal(t, []attribute.KeyValue{
			semconv.ServiceName("catalog-relay"),
			semconv.K8SPodName("relay-0"),
			semconv.K8SNamespaceName("shop"),
		}, attrs)
	})
}

func TestClientOptions(t *testing.T) {
	assert.Len(t, clientOptions(config.Otel{CollectorURL: "otel:4317", Insecure: true}), 2)
	assert.Len(t, clientOptions(config.Otel{CollectorURL: "otel:4317", CollectorAuth: "Bearer x"}), 3)
}
