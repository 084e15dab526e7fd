package cache

import (
	"context"
	"testing"
	"time"

	"folio/internal/log"
)

func TestNewLRUBackend(t *testing.T) {
	c, cleanup, err := New[string](context.Background(), Config{Type: LRUBackend, TTL: time.Minute}, log.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	if _, ok := c.(*LRUCache[string]); !ok {
		t.Fatalf("cache type = %T", c)
	}
	if err := c.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := c.Get(context.Background(), "k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	tests := []BackendType{"", "memcached"}
	for _, bt := range tests {
		t.Run(bt.String(), func(t *testing.T) {
			if _, _, err := New[string](context.Background(), Config{Type: bt}, log.Discard()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
