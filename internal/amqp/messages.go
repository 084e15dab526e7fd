package amqp

import (
	"encoding/json"
	"fmt"

	"folio/internal/events"
)

func encodeEvent(e events.Event) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return body, nil
}

func decodeEvent(body []byte) (events.Event, error) {
	var e events.Event
	if err := json.Unmarshal(body, &e); err != nil {
		return events.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return events.Event{}, err
	}
	return e, nil
}
