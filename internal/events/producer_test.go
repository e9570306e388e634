package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_PublishEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "storefront_events"}

	fav := true
	require.NoError(t, p.Publish(context.Background(), Event{Type: TypeFavoriteToggled, ProductID: 9, Favorited: &fav}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "9", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "favorite_toggled", got["type"])
	assert.EqualValues(t, 9, got["productID"])
	assert.Equal(t, true, got["favorited"])
	assert.NotEmpty(t, got["occurred_at"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Producer{writer: &fakeWriter{err: boom}, topic: "t"}

	err := p.Publish(context.Background(), Event{Type: TypeProductCreated})
	require.ErrorIs(t, err, boom)
}

func TestNewProducer_Validation(t *testing.T) {
	_, err := NewProducer(nil, "t")
	require.Error(t, err)
	_, err = NewProducer([]string{"localhost:9092"}, "")
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	require.NoError(t, Nop{}.Publish(context.Background(), Event{}))
}

func TestProducer_Kafka(t *testing.T) {
	addr := os.Getenv("KAFKA_ADDR")
	if addr == "" {
		t.Skip("KAFKA_ADDR not set")
	}
	topic := "storefront_events_test"

	p, err := NewProducer([]string{addr}, topic)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	conn, err := kafka.DialLeader(ctx, "tcp", addr, topic, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	require.NoError(t, p.Publish(ctx, Event{Type: TypeProductCreated, ProductID: 1, Name: "Caneca"}))

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{addr},
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	var event map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &event))
	assert.Equal(t, "product_created", event["type"])
	assert.Equal(t, "Caneca", event["name"])
}
