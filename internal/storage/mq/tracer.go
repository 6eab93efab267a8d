package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("internal/storage/mq")

	// kTracer traces produce and fetch at the client level and opens the
	// per-record process span in the consumer.
	kTracer = kotel.NewTracer()
)
