package outbox

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	msgs []kafka.Message
	err  error
}

func (p *fakeProducer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msgs...)
	return nil
}

type fakeStore struct {
	events []Event
	sent   []int64
	failed map[int64]string
}

func (s *fakeStore) LockBatch(context.Context, string, int, time.Duration) ([]Event, error) {
	out := s.events
	s.events = nil
	return out, nil
}

func (s *fakeStore) MarkSent(_ context.Context, ids []int64) error {
	s.sent = append(s.sent, ids...)
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id int64, msg string) error {
	if s.failed == nil {
		s.failed = map[int64]string{}
	}
	s.failed[id] = msg
	return nil
}

func (s *fakeStore) ExtendLease(context.Context, string, []int64, time.Duration) error {
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDispatchCarriesTypeAndTraceHeaders(t *testing.T) {
	p := &fakeProducer{}
	d := NewDispatcher(discardLogger(), p, "storefront.emails")

	err := d.Dispatch(context.Background(), Event{
		ID:          7,
		AggregateID: "order-1",
		Type:        "email/send",
		Payload:     []byte(`{"recipientEmail":"a@b.co"}`),
		Traceparent: "00-abc-def-01",
		Headers:     map[string]string{"source": "storefront"},
	})
	require.NoError(t, err)
	require.Len(t, p.msgs, 1)

	msg := p.msgs[0]
	assert.Equal(t, "storefront.emails", msg.Topic)
	assert.Equal(t, []byte("order-1"), msg.Key)

	got := map[string]string{}
	for _, h := range msg.Headers {
		got[h.Key] = string(h.Value)
	}
	assert.Equal(t, "email/send", got["event_type"])
	assert.Equal(t, "00-abc-def-01", got["traceparent"])
	assert.Equal(t, "storefront", got["source"])
}

func TestRelayMarksSentAndFailed(t *testing.T) {
	p := &fakeProducer{}
	store := &fakeStore{events: []Event{
		{ID: 1, AggregateID: "o1", Type: "email/send", Payload: []byte(`{}`)},
		{ID: 2, AggregateID: "o2", Type: "email/send", Payload: []byte(`{}`)},
	}}
	r := NewRelay(discardLogger(), store, NewDispatcher(discardLogger(), p, "t"), "relay-test")

	r.drain(context.Background())
	assert.Equal(t, []int64{1, 2}, store.sent)
	assert.Empty(t, store.failed)

	// Producer breaks: rows must be marked failed, not sent.
	store.events = []Event{{ID: 3, AggregateID: "o3", Type: "email/send"}}
	p.err = errors.New("broker down")
	r.drain(context.Background())
	assert.Equal(t, []int64{1, 2}, store.sent)
	assert.Equal(t, "broker down", store.failed[3])
}
