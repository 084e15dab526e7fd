package events

import (
	"errors"
	"testing"
	"time"
)

func TestNewIsValid(t *testing.T) {
	e := New(BillCreated, 12, "u1", "Food 300")
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if e.ID == New(BillCreated, 12, "u1", "").ID {
		t.Fatal("event ids must be unique")
	}
}

func TestValidate(t *testing.T) {
	good := New(MonthDeleted, 1, "", "")
	tests := []struct {
		name   string
		mutate func(*Event)
	}{
		{"missing id", func(e *Event) { e.ID = "" }},
		{"unknown kind", func(e *Event) { e.Kind = "month.exploded" }},
		{"missing time", func(e *Event) { e.OccurredAt = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := good
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, ErrInvalidEvent) {
				t.Fatalf("Validate() = %v, want ErrInvalidEvent", err)
			}
		})
	}
}
