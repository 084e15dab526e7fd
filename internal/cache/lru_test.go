package cache

import (
	"context"
	"testing"
	"time"

	"folio/internal/log"
)

func TestLRUCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache[string](2, time.Minute)

	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	_ = c.Set(ctx, "a", "1")
	_ = c.Set(ctx, "b", "2")
	if v, ok, err := c.Get(ctx, "a"); !ok || err != nil || v != "1" {
		t.Fatalf("Get(a) = %q %v %v", v, ok, err)
	}

	// "a" was touched last, so "b" is evicted.
	_ = c.Set(ctx, "c", "3")
	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Error("expected b to be evicted")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}

	_ = c.Delete(ctx, "a")
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Error("expected a to be deleted")
	}
}

func TestLRUCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Minute)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "x", 1)
	_ = c.Set(ctx, "y", 2)

	now = now.Add(30 * time.Second)
	if _, ok, _ := c.Get(ctx, "x"); !ok {
		t.Fatal("entry expired too early")
	}

	now = now.Add(time.Minute)
	if n := c.CleanExpired(); n != 2 {
		t.Errorf("CleanExpired() = %d, want 2", n)
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}
}

func TestLRUCache_OverwriteRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[string](10, time.Minute)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", "old")
	now = now.Add(50 * time.Second)
	_ = c.Set(ctx, "k", "new")
	now = now.Add(50 * time.Second)

	if v, ok, _ := c.Get(ctx, "k"); !ok || v != "new" {
		t.Fatalf("Get(k) = %q %v, want new", v, ok)
	}
}

func TestManager_SweepsRegisteredCaches(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Second)
	c.now = func() time.Time { return now }
	_ = c.Set(ctx, "a", 1)
	now = now.Add(2 * time.Second)

	m := NewManager(log.Discard())
	m.Register(c)
	if n := m.sweep(); n != 1 {
		t.Fatalf("sweep() = %d, want 1", n)
	}

	m.StartCleanup(time.Hour)
	m.Stop()
}
