package amqp

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"

	"folio/internal/events"
	"folio/internal/log"
)

// fakeAcknowledger records what the consumer decided for a delivery.
type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func TestEventRoundTrip(t *testing.T) {
	e := events.New(events.MonthCreated, 3, "u1", "March 2025")
	body, err := encodeEvent(e)
	if err != nil {
		t.Fatalf("encodeEvent: %v", err)
	}
	got, err := decodeEvent(body)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if got.ID != e.ID || got.Kind != e.Kind || !got.OccurredAt.Equal(e.OccurredAt) {
		t.Fatalf("got %+v, want %+v", got, e)
	}
}

func TestEncodeRejectsInvalidEvent(t *testing.T) {
	if _, err := encodeEvent(events.Event{Kind: events.BillDeleted}); !errors.Is(err, events.ErrInvalidEvent) {
		t.Fatalf("err = %v, want ErrInvalidEvent", err)
	}
}

func TestHandleDelivery(t *testing.T) {
	valid, _ := encodeEvent(events.New(events.BillDeleted, 9, "u1", ""))

	tests := []struct {
		name       string
		body       []byte
		handlerErr error
		wantAck    bool
		wantRequeue bool
	}{
		{name: "success acks", body: valid, wantAck: true},
		{name: "handler failure requeues", body: valid, handlerErr: errors.New("db locked"), wantRequeue: true},
		{name: "bad json is dropped", body: []byte("{nope")},
		{name: "unknown kind is dropped", body: []byte(`{"id":"x","kind":"bogus","occurred_at":"2025-01-01T00:00:00Z"}`)},
	}

	c := &Client{logger: log.Discard()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			d := amqp091.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: tt.body}
			called := false
			c.handleDelivery(context.Background(), d, func(ctx context.Context, e events.Event) error {
				called = true
				return tt.handlerErr
			})

			if ack.acked != tt.wantAck {
				t.Errorf("acked = %v, want %v", ack.acked, tt.wantAck)
			}
			if !tt.wantAck && !ack.nacked {
				t.Error("expected nack")
			}
			if ack.requeued != tt.wantRequeue {
				t.Errorf("requeued = %v, want %v", ack.requeued, tt.wantRequeue)
			}
			if tt.body[0] == '{' && string(tt.body) == string(valid) && !called {
				t.Error("handler not called for a valid event")
			}
		})
	}
}
