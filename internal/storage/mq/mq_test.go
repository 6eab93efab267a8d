package mq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/ptr"
)

func newTestConsumer() *KafkaConsumer {
	return &KafkaConsumer{
		handlers: make(map[string]HandlerFunc),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestHandleRecord(t *testing.T) {
	t.Run("Should dispatch to the topic handler with the correlation id", func(t *testing.T) {
		c := newTestConsumer()

		var (
			gotPayload     []byte
			gotCorrelation string
		)
		c.handlers["product.created"] = func(ctx context.Context, topic string, payload []byte) error {
			gotPayload = payload
			gotCorrelation, _ = correlationid.FromContext(ctx)
			return nil
		}

		c.handleRecord(&kgo.Record{
			Context: context.Background(),
			Topic:   "product.created",
			Value:   []byte(`{"product_id":1}`),
			Headers: []kgo.RecordHeader{{Key: correlationid.Header, Value: []byte("corr-1")}},
		})

		assert.JSONEq(t, `{"product_id":1}`, string(gotPayload))
		assert.Equal(t, "corr-1", gotCorrelation)
	})

	t.Run("Should survive a failing handler", func(t *testing.T) {
		c := newTestConsumer()
		c.handlers["product.deleted"] = func(context.Context, string, []byte) error {
			return errors.New("boom")
		}

		assert.NotPanics(t, func() {
			c.handleRecord(&kgo.Record{Context: context.Background(), Topic: "product.deleted"})
		})
	})

	t.Run("Should recover a panicking handler", func(t *testing.T) {
		c := newTestConsumer()
		c.handlers["product.updated"] = func(context.Context, string, []byte) error {
			panic("bad payload")
		}

		assert.NotPanics(t, func() {
			c.handleRecord(&kgo.Record{Context: context.Background(), Topic: "product.updated"})
		})
	})

	t.Run("Should ignore unknown topics", func(t *testing.T) {
		c := newTestConsumer()

		assert.NotPanics(t, func() {
			c.handleRecord(&kgo.Record{Context: context.Background(), Topic: "unknown"})
		})
	})
}

func TestBuildProduceRecord(t *testing.T) {
	r := buildProduceRecord(ProduceMsg{
		Topic:        "product.created",
		Headers:      map[string]string{correlationid.Header: "corr-1"},
		Payload:      []byte(`{}`),
		PartitionKey: ptr.New("42"),
	})

	assert.Equal(t, "product.created", r.Topic)
	assert.Equal(t, []byte("42"), r.Key)
	assert.Equal(t, []byte(`{}`), r.Value)
	require.Len(t, r.Headers, 1)
	assert.Equal(t, correlationid.Header, r.Headers[0].Key)
	assert.Equal(t, []byte("corr-1"), r.Headers[0].Value)

	r = buildProduceRecord(ProduceMsg{Topic: "product.deleted"})
	assert.Nil(t, r.Key)
}
